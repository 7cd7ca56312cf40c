package splat

import (
	"math"
	"testing"
)

const (
	testWidth  = 800.0
	testHeight = 600.0
)

func testCamera() (view, proj Mat4) {
	view = LookAt(V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0))
	proj = Perspective(math.Pi/2, testWidth/testHeight, 0.1, 100)
	return view, proj
}

func TestScreenToNDC(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		nx, ny float64
	}{
		{"top-left", 0, 0, -1, 1},
		{"bottom-right", testWidth, testHeight, 1, -1},
		{"center", testWidth / 2, testHeight / 2, 0, 0},
		{"quarter", testWidth / 4, testHeight / 4, -0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nx, ny := ScreenToNDC(tt.x, tt.y, testWidth, testHeight)
			if nx != tt.nx || ny != tt.ny {
				t.Errorf("ScreenToNDC(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, nx, ny, tt.nx, tt.ny)
			}
			x, y := NDCToScreen(nx, ny, testWidth, testHeight)
			if x != tt.x || y != tt.y {
				t.Errorf("NDCToScreen round trip = (%v, %v), want (%v, %v)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestIntersectPlane(t *testing.T) {
	down := Ray{Origin: V3(0, 5, 0), Direction: V3(0, -1, 0)}

	tests := []struct {
		name   string
		ray    Ray
		axis   Axis
		offset float64
		want   Vec3
		wantOK bool
	}{
		{"ground plane", down, AxisY, 0, V3(0, 0, 0), true},
		{"raised plane", down, AxisY, 2, V3(0, 2, 0), true},
		{"parallel x plane", down, AxisX, 0, Vec3{}, false},
		{"parallel z plane", down, AxisZ, 0, Vec3{}, false},
		{"behind origin", down, AxisY, 6, Vec3{}, false},
		{"none falls back to y", down, AxisNone, 1, V3(0, 1, 0), true},
		{"oblique x plane", Ray{Origin: V3(-2, 1, 0), Direction: V3(1, 0, 1).Normalize()}, AxisX, 1, V3(1, 1, 3), true},
		{"nearly parallel", Ray{Origin: V3(0, 5, 0), Direction: V3(1, 1e-7, 0)}, AxisY, 0, Vec3{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlane(tt.axis, tt.offset)
			if ok != tt.wantOK {
				t.Fatalf("IntersectPlane() ok = %v, want %v", ok, tt.wantOK)
			}
			if !got.Approx(tt.want, 1e-9) {
				t.Errorf("IntersectPlane() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildRay_Identity(t *testing.T) {
	ray, ok := BuildRay(testWidth/2, testHeight/2, Identity4(), Identity4(), testWidth, testHeight)
	if !ok {
		t.Fatal("BuildRay() failed for identity matrices")
	}
	if !ray.Origin.Approx(V3(0, 0, -1), 1e-12) {
		t.Errorf("origin = %v, want (0,0,-1)", ray.Origin)
	}
	if !ray.Direction.Approx(V3(0, 0, 1), 1e-12) {
		t.Errorf("direction = %v, want (0,0,1)", ray.Direction)
	}
}

func TestBuildRay_Perspective(t *testing.T) {
	view, proj := testCamera()

	ray, ok := BuildRay(testWidth/2, testHeight/2, view, proj, testWidth, testHeight)
	if !ok {
		t.Fatal("BuildRay() failed")
	}
	if !ray.Direction.Approx(V3(0, 0, -1), 1e-9) {
		t.Errorf("center direction = %v, want (0,0,-1)", ray.Direction)
	}
	if !ray.Origin.Approx(V3(0, 0, 4.9), 1e-9) {
		t.Errorf("center origin = %v, want near plane point (0,0,4.9)", ray.Origin)
	}
	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("direction not normalized: %v", ray.Direction.Length())
	}

	hit, ok := ray.IntersectPlane(AxisZ, 0)
	if !ok || !hit.Approx(Vec3{}, 1e-9) {
		t.Errorf("center ray hits z=0 at %v (ok=%v), want origin", hit, ok)
	}

	// A pixel in the top-left quadrant points up and to the left.
	ray, _ = BuildRay(0, 0, view, proj, testWidth, testHeight)
	if ray.Direction.X >= 0 || ray.Direction.Y <= 0 {
		t.Errorf("top-left direction = %v, want -X +Y", ray.Direction)
	}
}

func TestBuildRay_Singular(t *testing.T) {
	ray, ok := BuildRay(10, 10, Identity4(), Mat4{}, testWidth, testHeight)
	if ok {
		t.Error("BuildRay() ok = true for singular projection")
	}
	if ray != (Ray{}) {
		t.Errorf("BuildRay() = %v, want zero ray", ray)
	}
}

func TestUnproject_RoundTrip(t *testing.T) {
	view, proj := testCamera()

	points := []Vec3{
		V3(0, 0, 0),
		V3(1, 0.5, -2),
		V3(-1.5, -1, 1),
	}
	for _, p := range points {
		x, y, d, ok := ProjectToScreen(p, view, proj, testWidth, testHeight)
		if !ok {
			t.Fatalf("ProjectToScreen(%v) failed", p)
		}
		if d <= 0 || d >= 1 {
			t.Errorf("depth of %v = %v, want in (0,1)", p, d)
		}
		got := Unproject(x, y, d, view, proj, testWidth, testHeight)
		if !got.Approx(p, 1e-6) {
			t.Errorf("Unproject(Project(%v)) = %v", p, got)
		}
	}
}

func TestUnproject_NearFar(t *testing.T) {
	view, proj := testCamera()
	near := Unproject(testWidth/2, testHeight/2, 0, view, proj, testWidth, testHeight)
	far := Unproject(testWidth/2, testHeight/2, 1, view, proj, testWidth, testHeight)
	if !near.Approx(V3(0, 0, 4.9), 1e-9) {
		t.Errorf("depth 0 = %v, want (0,0,4.9)", near)
	}
	if !far.Approx(V3(0, 0, -95), 1e-6) {
		t.Errorf("depth 1 = %v, want (0,0,-95)", far)
	}
}

func TestUnproject_Degenerate(t *testing.T) {
	// Swapping x and w maps the center pixel to W = 0.
	swapXW := Mat4{
		0, 0, 0, 1,
		0, 1, 0, 0,
		0, 0, 1, 0,
		1, 0, 0, 0,
	}
	got := Unproject(testWidth/2, testHeight/2, 0.5, Identity4(), swapXW, testWidth, testHeight)
	if !got.IsZero() {
		t.Errorf("Unproject() with W = 0 = %v, want origin", got)
	}

	got = Unproject(1, 2, 0.5, Identity4(), Mat4{}, testWidth, testHeight)
	if !got.IsZero() {
		t.Errorf("Unproject() with singular matrix = %v, want origin", got)
	}
}

func TestProjectToScreen_BehindCamera(t *testing.T) {
	view, proj := testCamera()
	if _, _, _, ok := ProjectToScreen(V3(0, 0, 10), view, proj, testWidth, testHeight); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{AxisNone, AxisX, AxisY, AxisZ} {
		got, err := ParseAxis(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAxis(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("ParseAxis(\"w\") should fail")
	}
}
