// Package config handles game configuration loading and management.
package config

import "time"

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Controls ControlsConfig `yaml:"controls"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// GameplayConfig holds tuning for projectiles and hit resolution.
type GameplayConfig struct {
	ProjectileSpeed    float32       `yaml:"projectile_speed"`
	ProjectileLifetime time.Duration `yaml:"projectile_lifetime"`
	PoolSize           int           `yaml:"pool_size"`
	FireCooldown       time.Duration `yaml:"fire_cooldown"`
	RestoreDuration    time.Duration `yaml:"restore_duration"`
}

// ControlsConfig holds camera and input tuning.
type ControlsConfig struct {
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	InvertY         bool    `yaml:"invert_y"`
}

// DataConfig holds data file paths.
type DataConfig struct {
	StagesPath  string `yaml:"stages_path"`  // Optional yaml stage list; built-in stages when empty
	RecordsPath string `yaml:"records_path"` // SQLite database for stage records
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ShowFPS:    false,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Gameplay: GameplayConfig{
			ProjectileSpeed:    20.0,
			ProjectileLifetime: 3 * time.Second,
			PoolSize:           32,
			FireCooldown:       150 * time.Millisecond,
			RestoreDuration:    800 * time.Millisecond,
		},
		Controls: ControlsConfig{
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.25,
			InvertY:         false,
		},
		Data: DataConfig{
			StagesPath:  "",
			RecordsPath: "records.db",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
