package scene

// NewDefaultScene creates three spheres on a large ground sphere lit by a
// white key light and a dimmer blue fill light
func NewDefaultScene() *Config {
	return &Config{
		Name:        "Default Scene",
		Description: "Three spheres on a ground sphere with two point lights",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Camera: CameraSpec{
			Position: &Vector{0, 0.5, 5},
		},
		Spheres: []SphereSpec{
			{Center: Vector{0, -100.5, -1}, Radius: 100, Color: Vector{0.8, 0.8, 0.0}},
			{Center: Vector{0, 0, -1}, Radius: 0.5, Color: Vector{0.7, 0.3, 0.3}},
			{Center: Vector{-1.1, 0, -1.2}, Radius: 0.5, Color: Vector{0.2, 0.4, 0.8}},
			{Center: Vector{1.1, 0, -1.2}, Radius: 0.5, Color: Vector{0.8, 0.6, 0.2}},
		},
		Lights: []LightSpec{
			{Position: Vector{2, 3, 2}, Color: Vector{1, 1, 1}, Intensity: 1},
			{Position: Vector{-3, 2, 1}, Color: Vector{0.4, 0.5, 1}, Intensity: 0.5},
		},
	}
}

// NewShadowsScene places a small occluder between a light and a large sphere
// so the hard shadow is clearly visible
func NewShadowsScene() *Config {
	return &Config{
		Name:        "Shadows",
		Description: "Occluder sphere casting a hard shadow onto a larger sphere",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Camera: CameraSpec{
			Position:     &Vector{0, 1, 4},
			Target:       &Vector{0, 0, -1},
			LookAtTarget: true,
		},
		Spheres: []SphereSpec{
			{Center: Vector{0, -1000.5, -1}, Radius: 1000, Color: Vector{0.9, 0.9, 0.9}},
			{Center: Vector{0, 0, -1}, Radius: 0.5, Color: Vector{0.3, 0.7, 0.3}},
			{Center: Vector{0, 1.2, -1}, Radius: 0.2, Color: Vector{0.8, 0.2, 0.2}},
		},
		Lights: []LightSpec{
			{Position: Vector{0, 4, -1}, Color: Vector{1, 1, 1}, Intensity: 1},
		},
	}
}
