package config

import (
	"github.com/pkg/errors"

	"github.com/ivlev/campath/internal/trajectory"
)

type Config struct {
	Trajectories []string
	NFrame       int
	Elevation    float64
	Radius       float64
	Focal        float64
	Width        int
	Height       int
	FocalPixels  float64
	FPS          int
	OutDir       string
	Preview      bool
	Quiet        bool
	Workers      int
	BuildVersion string
}

// Validate проверяет конфигурацию перед запуском
func (c *Config) Validate() error {
	if len(c.Trajectories) == 0 {
		return errors.New("не задано ни одной траектории")
	}
	for _, name := range c.Trajectories {
		if _, err := trajectory.Lookup(name); err != nil {
			return err
		}
	}
	if c.NFrame < 2 {
		return errors.Errorf("число кадров должно быть не меньше 2, получено %d", c.NFrame)
	}
	if c.Radius <= 0 {
		return errors.Errorf("радиус должен быть положительным, получено %g", c.Radius)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("размер кадра должен быть положительным, получено %dx%d", c.Width, c.Height)
	}
	if c.FocalPixels <= 0 {
		return errors.Errorf("фокусное расстояние должно быть положительным, получено %g", c.FocalPixels)
	}
	return nil
}
