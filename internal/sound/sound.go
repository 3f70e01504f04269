package sound

import (
	"github.com/MMR-MINGriyue/focusflow/internal/logger"
	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

// CueLogger is a sound gateway that records which cue would play.
// Actual audio playback belongs to the host application; the engine only
// produces keys.
type CueLogger struct{}

func New() *CueLogger {
	return &CueLogger{}
}

func (c *CueLogger) Play(key models.SoundKey) error {
	logger.Debug("Sound cue", "key", string(key))
	return nil
}
