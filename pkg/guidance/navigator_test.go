package guidance

import (
	"math"
	"strings"
	"testing"
	"time"

	"trail_guide/pkg/format"
	"trail_guide/pkg/geo"
	"trail_guide/pkg/marker"
	"trail_guide/pkg/path"
)

func testNavigator(t *testing.T, cfg Config) *Navigator {
	t.Helper()

	// North-going trail, ~1.1 km.
	trail, err := path.New("trail-1", "Ridge", []geo.Point{
		{Lat: 59.900, Lon: 10.700},
		{Lat: 59.905, Lon: 10.700},
		{Lat: 59.910, Lon: 10.700},
	})
	if err != nil {
		t.Fatal(err)
	}

	ms := marker.NewStore()
	ms.Add(marker.Marker{ID: "m-top", Label: "Summit", Point: geo.Point{Lat: 59.910, Lon: 10.700}})
	ms.Add(marker.Marker{ID: "m-hut", Label: "Hut", Point: geo.Point{Lat: 59.902, Lon: 10.710}})

	project := geo.EquirectProjector(geo.Point{Lat: 59.905, Lon: 10.705})
	return New(cfg, project, []*path.Path{trail}, ms)
}

func TestNoFixNoTargetNoOps(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	now := time.Unix(1000, 0)

	// Nothing selected, no fix: everything returns zero values, no panics.
	upd := n.OnRenderTick(now, 45)
	if upd.Apply {
		t.Error("tick with no target applied an angle")
	}
	if _, ok := n.TargetPoint(); ok {
		t.Error("TargetPoint reported a target")
	}
	if txt := n.DistanceText(format.ModeDistance); txt != "" {
		t.Errorf("DistanceText = %q, want empty", txt)
	}

	// Target selected but still no fix: same story.
	if err := n.SelectMarker(0); err != nil {
		t.Fatal(err)
	}
	if upd := n.OnRenderTick(now, 45); upd.Apply {
		t.Error("tick with no fix applied an angle")
	}
}

func TestMarkerTargeting(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	now := time.Unix(1000, 0)

	if err := n.SelectMarker(1); err != nil {
		t.Fatal(err)
	}
	n.OnPositionFix(now, Fix{Point: geo.Point{Lat: 59.902, Lon: 10.700}})

	pt, ok := n.TargetPoint()
	if !ok {
		t.Fatal("no target point")
	}
	if pt.Lat != 59.902 || pt.Lon != 10.710 {
		t.Errorf("target = %+v, want the hut marker", pt)
	}

	// Hut is due east; facing north means turn right 90.
	upd := n.OnRenderTick(now, 0)
	if !upd.Apply {
		t.Fatal("first tick should apply")
	}
	if math.Abs(upd.AngleDeg-90) > 1 {
		t.Errorf("angle = %f, want ~90", upd.AngleDeg)
	}

	txt := n.DistanceText(format.ModeDistance)
	if !strings.HasSuffix(txt, " m") {
		t.Errorf("DistanceText = %q, want meters", txt)
	}
}

func TestSelectMarkerOutOfRange(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	if err := n.SelectMarker(99); err != ErrNoSuchMarker {
		t.Errorf("err = %v, want ErrNoSuchMarker", err)
	}
	if err := n.SelectPath(5); err != ErrNoSuchPath {
		t.Errorf("err = %v, want ErrNoSuchPath", err)
	}
}

func TestPathFollowingUsesClosestPoint(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	now := time.Unix(1000, 0)

	if err := n.SelectPath(0); err != nil {
		t.Fatal(err)
	}
	// Standing east of the trail's midsection.
	n.OnPositionFix(now, Fix{Point: geo.Point{Lat: 59.9042, Lon: 10.703}})

	res := n.Closest()
	if res == nil {
		t.Fatal("no closest result")
	}
	if res.SegmentIndex != 0 {
		t.Errorf("SegmentIndex = %d, want 0", res.SegmentIndex)
	}
	if math.Abs(res.Point.Lon-10.700) > 1e-9 {
		t.Errorf("closest point lon = %f, want on the trail at 10.700", res.Point.Lon)
	}
	if math.Abs(res.Point.Lat-59.9042) > 1e-4 {
		t.Errorf("closest point lat = %f, want ~59.9042", res.Point.Lat)
	}

	// Steering aims at the closest point (due west), not the path end.
	upd := n.OnRenderTick(now, 0)
	if !upd.Apply {
		t.Fatal("first tick should apply")
	}
	if math.Abs(upd.AngleDeg-(-90)) > 2 {
		t.Errorf("angle = %f, want ~-90 (due west)", upd.AngleDeg)
	}

	// Off-path text carries both numbers.
	txt := n.DistanceText(format.ModeDistance)
	if !strings.Contains(txt, "to path") || !strings.Contains(txt, "left") {
		t.Errorf("DistanceText = %q, want off-path form", txt)
	}
}

func TestPathFollowingOnPathText(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	now := time.Unix(1000, 0)

	if err := n.SelectPath(0); err != nil {
		t.Fatal(err)
	}
	// Standing almost exactly on the trail.
	n.OnPositionFix(now, Fix{Point: geo.Point{Lat: 59.9042, Lon: 10.70001}})

	txt := n.DistanceText(format.ModeDistance)
	if strings.Contains(txt, "to path") {
		t.Errorf("DistanceText = %q, want collapsed on-path form", txt)
	}
	if !strings.Contains(txt, "left") {
		t.Errorf("DistanceText = %q, want remaining distance", txt)
	}
}

func TestTargetSwitchResetsState(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	now := time.Unix(1000, 0)

	if err := n.SelectPath(0); err != nil {
		t.Fatal(err)
	}
	// On the trail: proximity hides the indicator; a tick applies an angle.
	n.OnPositionFix(now, Fix{Point: geo.Point{Lat: 59.9042, Lon: 10.70001}})
	n.OnRenderTick(now, 0)

	s := n.GuidanceState()
	if !s.HiddenByProximity {
		t.Fatal("expected hidden before switch")
	}
	if !s.HasAppliedAngle() {
		t.Fatal("expected an applied angle before switch")
	}

	// Switching to a marker must wipe both, regardless of prior values.
	if err := n.SelectMarker(0); err != nil {
		t.Fatal(err)
	}
	s = n.GuidanceState()
	if s.HiddenByProximity {
		t.Error("HiddenByProximity leaked across target switch")
	}
	if s.HasAppliedAngle() {
		t.Error("LastAppliedDeg leaked across target switch")
	}
	if n.Closest() != nil {
		t.Error("closest-point result leaked across target switch")
	}
}

func TestReselectingSameTargetKeepsState(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	now := time.Unix(1000, 0)

	if err := n.SelectMarker(0); err != nil {
		t.Fatal(err)
	}
	n.OnPositionFix(now, Fix{Point: geo.Point{Lat: 59.902, Lon: 10.700}})
	n.OnRenderTick(now, 0)

	if err := n.SelectMarker(0); err != nil {
		t.Fatal(err)
	}
	st := n.GuidanceState()
	if !st.HasAppliedAngle() {
		t.Error("re-selecting the active target reset the state")
	}
}

func TestAutoActivateOffByDefault(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	now := time.Unix(1000, 0)

	// Right next to the trail, but the policy is off.
	n.OnPositionFix(now, Fix{Point: geo.Point{Lat: 59.9042, Lon: 10.7001}})
	if kind, _ := n.Target(); kind != TargetNone {
		t.Errorf("target = %v, want none with auto-activation off", kind)
	}
}

func TestAutoActivateOptIn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoActivate = true
	n := testNavigator(t, cfg)
	now := time.Unix(1000, 0)

	// Too far away: nothing happens.
	n.OnPositionFix(now, Fix{Point: geo.Point{Lat: 59.930, Lon: 10.700}})
	if kind, _ := n.Target(); kind != TargetNone {
		t.Fatalf("target = %v, want none while far away", kind)
	}

	// Within 100 m of the trail: the path activates.
	n.OnPositionFix(now.Add(time.Second), Fix{Point: geo.Point{Lat: 59.9042, Lon: 10.7008}})
	kind, idx := n.Target()
	if kind != TargetPath || idx != 0 {
		t.Fatalf("target = %v/%d, want path 0", kind, idx)
	}

	// An explicit marker selection is never overridden afterwards.
	if err := n.SelectMarker(1); err != nil {
		t.Fatal(err)
	}
	n.OnPositionFix(now.Add(2*time.Second), Fix{Point: geo.Point{Lat: 59.9042, Lon: 10.7008}})
	if kind, _ := n.Target(); kind != TargetMarker {
		t.Errorf("target = %v, auto-activation overrode an explicit selection", kind)
	}
}

func TestClearTarget(t *testing.T) {
	n := testNavigator(t, DefaultConfig())
	now := time.Unix(1000, 0)

	if err := n.SelectPath(0); err != nil {
		t.Fatal(err)
	}
	n.OnPositionFix(now, Fix{Point: geo.Point{Lat: 59.9042, Lon: 10.703}})
	n.ClearTarget()

	if kind, _ := n.Target(); kind != TargetNone {
		t.Errorf("target = %v, want none", kind)
	}
	if upd := n.OnRenderTick(now, 0); upd.Apply {
		t.Error("tick after clear applied an angle")
	}
}

func TestCompanionMarker(t *testing.T) {
	n := testNavigator(t, DefaultConfig())

	// m-top sits exactly on the trail's end vertex.
	if err := n.SelectPath(0); err != nil {
		t.Fatal(err)
	}
	idx, ok := n.CompanionMarker()
	if !ok || idx != 0 {
		t.Errorf("CompanionMarker = %d, %v; want 0, true", idx, ok)
	}

	// No companion while a marker is the target.
	if err := n.SelectMarker(1); err != nil {
		t.Fatal(err)
	}
	if _, ok := n.CompanionMarker(); ok {
		t.Error("CompanionMarker reported for a marker target")
	}
}

func TestSelectorTransitions(t *testing.T) {
	var s Selector

	if s.Kind() != TargetNone {
		t.Fatal("zero selector should have no target")
	}
	if !s.SelectMarker(2) {
		t.Error("NoTarget -> marker should change")
	}
	if s.SelectMarker(2) {
		t.Error("same marker re-selection should not change")
	}
	if !s.SelectMarker(3) {
		t.Error("marker -> other marker should change")
	}
	if !s.SelectPath(0) {
		t.Error("marker -> path should change")
	}
	if s.Kind() != TargetPath || s.PathIndex() != 0 {
		t.Errorf("state = %v/%d, want path 0", s.Kind(), s.PathIndex())
	}
	if !s.Clear() {
		t.Error("path -> none should change")
	}
	if s.Clear() {
		t.Error("clearing twice should not change")
	}
}
