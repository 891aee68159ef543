package barista

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Dotan232/SweetBarista/internal/config"
)

func stillSugar() config.SugarConfig {
	phys := config.DefaultBaristaConfig().Sugar
	phys.InitialVY = 0
	phys.DriftRange = 0
	phys.SpinRange = 0
	phys.Damping = 1
	return phys
}

func TestSugarFreeFall(t *testing.T) {
	cube := newSugarCube(rand.New(rand.NewSource(1)), 100, 0, stillSugar())
	dt := 1.0 / 60

	// 50 = 0.5 * 180 * t^2 gives t of about 0.745s
	elapsed := 0.0
	for cube.Y < 50 {
		if cube.Advance(dt, 1000) {
			t.Fatal("cube landed before reaching y=50")
		}
		elapsed += dt
		if elapsed > 2 {
			t.Fatal("cube never reached y=50")
		}
	}

	if math.Abs(elapsed-0.745) > 0.02 {
		t.Errorf("time to fall 50px = %.3fs, want about 0.745s", elapsed)
	}
	if cube.X != 100 {
		t.Errorf("X = %v, want 100 with no drift", cube.X)
	}
	if !cube.Falling() {
		t.Errorf("State = %v, want falling", cube.State)
	}
}

func TestSugarDriftDamping(t *testing.T) {
	phys := stillSugar()
	phys.Damping = 0.5
	cube := newSugarCube(rand.New(rand.NewSource(1)), 0, 0, phys)
	cube.VX = 10

	cube.Advance(0.1, 1000)

	if math.Abs(cube.X-1) > 1e-9 {
		t.Errorf("X = %v, want 1", cube.X)
	}
	// 0.1s is six 1/60s damping steps
	if want := 10 * math.Pow(0.5, 6); math.Abs(cube.VX-want) > 1e-9 {
		t.Errorf("VX = %v, want %v after damping", cube.VX, want)
	}
}

func TestSugarDriftIndependentOfFrameRate(t *testing.T) {
	drift := func(fps int) *SugarCube {
		phys := stillSugar()
		phys.Damping = 0.9
		cube := newSugarCube(rand.New(rand.NewSource(1)), 0, 0, phys)
		cube.VX = 10
		dt := 1.0 / float64(fps)
		for i := 0; i < fps; i++ {
			cube.Advance(dt, 1000)
		}
		return cube
	}

	slow, fast := drift(30), drift(60)
	want := 10 * math.Pow(0.9, 60)
	for _, c := range []*SugarCube{slow, fast} {
		if math.Abs(c.VX-want) > 1e-9 {
			t.Errorf("VX after 1s = %v, want %v", c.VX, want)
		}
	}
	if math.Abs(slow.X-fast.X) > 0.1*fast.X {
		t.Errorf("drift at 30fps = %v, at 60fps = %v, want within 10%%", slow.X, fast.X)
	}
}

func TestSugarInitialVelocityRanges(t *testing.T) {
	phys := config.DefaultBaristaConfig().Sugar
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		cube := newSugarCube(rng, 0, 0, phys)
		if math.Abs(cube.VX) > phys.DriftRange/2 {
			t.Fatalf("VX = %v outside ±%v", cube.VX, phys.DriftRange/2)
		}
		if math.Abs(cube.Spin) > phys.SpinRange/2 {
			t.Fatalf("Spin = %v outside ±%v", cube.Spin, phys.SpinRange/2)
		}
		if cube.VY != phys.InitialVY {
			t.Fatalf("VY = %v, want %v", cube.VY, phys.InitialVY)
		}
	}
}

func TestSugarLandsAndSplashes(t *testing.T) {
	phys := stillSugar()
	cube := newSugarCube(rand.New(rand.NewSource(1)), 0, 90, phys)

	landed := false
	for i := 0; i < 120 && !landed; i++ {
		landed = cube.Advance(1.0/60, 100)
	}
	if !landed {
		t.Fatal("cube never reported landing")
	}
	if cube.State != CubeSplashing {
		t.Fatalf("State = %v, want splashing", cube.State)
	}
	if want := 100 - phys.Size/2; cube.Y != want {
		t.Errorf("Y = %v, want snapped to %v", cube.Y, want)
	}

	// Landing is reported once
	if cube.Advance(phys.SplashDuration/2, 100) {
		t.Error("Advance reported a second landing")
	}
	if cube.Opacity >= 1 || cube.Scale <= 1 {
		t.Errorf("mid splash opacity=%v scale=%v, want fading and growing", cube.Opacity, cube.Scale)
	}

	cube.Advance(phys.SplashDuration, 100)
	if cube.Active() {
		t.Errorf("State = %v after splash, want inactive", cube.State)
	}
}

func TestSugarBounce(t *testing.T) {
	phys := stillSugar()
	cube := newSugarCube(rand.New(rand.NewSource(1)), 0, 200, phys)

	if !cube.Bounce() {
		t.Fatal("Bounce() on a falling cube = false")
	}
	if cube.Bounce() {
		t.Error("Bounce() on a bouncing cube = true")
	}

	cube.Advance(phys.BounceDuration/2, 1000)
	if want := 200 - phys.BounceHeight; math.Abs(cube.Y-want) > 1e-9 {
		t.Errorf("apex Y = %v, want %v", cube.Y, want)
	}
	if cube.Scale < 0.5 || cube.Scale > 1 {
		t.Errorf("Scale = %v, want within [0.5, 1]", cube.Scale)
	}

	cube.Advance(phys.BounceDuration, 1000)
	if cube.Active() {
		t.Error("cube still active after the bounce animation")
	}
}

func TestSugarLifetime(t *testing.T) {
	phys := stillSugar()
	phys.Gravity = 0
	cube := newSugarCube(rand.New(rand.NewSource(1)), 0, 0, phys)

	for i := 0; i < 4; i++ {
		cube.Advance(1, 1000)
	}
	if !cube.Falling() {
		t.Fatalf("State = %v before lifetime, want falling", cube.State)
	}
	cube.Advance(1.5, 1000)
	if cube.Active() {
		t.Errorf("State = %v after lifetime, want inactive", cube.State)
	}
}
