package preset

import "errors"

var (
	ErrUnknownPreset  = errors.New("unknown toast preset")
	ErrInvalidPreset  = errors.New("invalid toast preset")
	ErrFailedToParse  = errors.New("failed to parse presets")
	ErrFailedToLoad   = errors.New("failed to read presets file")
	ErrNoPresets      = errors.New("presets file defines no presets")
	ErrUnknownDefault = errors.New("default preset is not defined")
)
