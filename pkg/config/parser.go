package config

import (
	"fmt"
	"io"
	"math"

	"github.com/samsamfire/gocanfd/pkg/clock"
	"github.com/samsamfire/gocanfd/pkg/timing"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Section & key names of the .ini format
const (
	sectionClock          = "clock"
	sectionClassical      = "classical"
	sectionFD             = "fd"
	sectionMessageBuffers = "message_buffers"

	keySpeed                   = "speed"
	keyBaudrate                = "baudrate"
	keyJumpWidth               = "jump_width"
	keyPhaseSeg1               = "phase_seg_1"
	keyPhaseSeg2               = "phase_seg_2"
	keyPropSeg                 = "prop_seg"
	keyTransceiverCompensation = "transceiver_compensation"
	keyRegion1                 = "region_1"
	keyRegion2                 = "region_2"
)

// Load a configuration from an .ini document
// file can be either a path or an *os.File or []byte
// Missing keys keep the value of [Default]
func Load(file any) (*Config, error) {
	iniFile, err := ini.Load(file)
	if err != nil {
		return nil, err
	}
	config := Default()

	if section := iniFile.Section(sectionClock); section.HasKey(keySpeed) {
		config.Clock, err = clock.ParseSpeed(section.Key(keySpeed).String())
		if err != nil {
			return nil, err
		}
	}
	err = parseTiming(iniFile.Section(sectionClassical), &config.Classical)
	if err != nil {
		return nil, err
	}
	fdSection := iniFile.Section(sectionFD)
	err = parseTiming(fdSection, &config.FD)
	if err != nil {
		return nil, err
	}
	if fdSection.HasKey(keyTransceiverCompensation) {
		config.TransceiverCompensation, err = fdSection.Key(keyTransceiverCompensation).Bool()
		if err != nil {
			return nil, fmt.Errorf("[%v] %v : %w", sectionFD, keyTransceiverCompensation, err)
		}
	}
	mbSection := iniFile.Section(sectionMessageBuffers)
	err = parseMBSize(mbSection, keyRegion1, &config.Region1MBSize)
	if err != nil {
		return nil, err
	}
	err = parseMBSize(mbSection, keyRegion2, &config.Region2MBSize)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("[CONFIG] loaded | clock %v | classical %v bit/s | fd %v bit/s | tdc %v",
		config.Clock, config.Classical.Baudrate, config.FD.Baudrate, config.TransceiverCompensation)
	return config, nil
}

func parseTiming(section *ini.Section, spec *timing.Spec) error {
	if section.HasKey(keyBaudrate) {
		baudrate, err := section.Key(keyBaudrate).Uint()
		if err != nil {
			return fmt.Errorf("[%v] %v : %w", section.Name(), keyBaudrate, err)
		}
		if baudrate > math.MaxUint32 {
			return fmt.Errorf("[%v] %v : %v does not fit in 32 bits", section.Name(), keyBaudrate, baudrate)
		}
		spec.Baudrate = uint32(baudrate)
	}
	segments := []struct {
		key   string
		value *uint8
	}{
		{keyJumpWidth, &spec.JumpWidth},
		{keyPhaseSeg1, &spec.PhaseSeg1},
		{keyPhaseSeg2, &spec.PhaseSeg2},
		{keyPropSeg, &spec.PropSeg},
	}
	for _, segment := range segments {
		if !section.HasKey(segment.key) {
			continue
		}
		value, err := section.Key(segment.key).Uint()
		if err != nil {
			return fmt.Errorf("[%v] %v : %w", section.Name(), segment.key, err)
		}
		if value > 0xFF {
			return fmt.Errorf("[%v] %v : %v does not fit in 8 bits", section.Name(), segment.key, value)
		}
		*segment.value = uint8(value)
	}
	return nil
}

func parseMBSize(section *ini.Section, key string, size *MBSize) error {
	if !section.HasKey(key) {
		return nil
	}
	bytes, err := section.Key(key).Uint()
	if err != nil {
		return fmt.Errorf("[%v] %v : %w", section.Name(), key, err)
	}
	*size, err = ParseMBSize(bytes)
	return err
}

// WriteTo exports the configuration in the format understood by [Load]
func (config *Config) WriteTo(w io.Writer) (int64, error) {
	iniFile := ini.Empty()

	clockSection, _ := iniFile.NewSection(sectionClock)
	_, _ = clockSection.NewKey(keySpeed, config.Clock.String())

	writeTiming(iniFile, sectionClassical, config.Classical)
	fdSection := writeTiming(iniFile, sectionFD, config.FD)
	_, _ = fdSection.NewKey(keyTransceiverCompensation, fmt.Sprint(config.TransceiverCompensation))

	mbSection, _ := iniFile.NewSection(sectionMessageBuffers)
	_, _ = mbSection.NewKey(keyRegion1, fmt.Sprint(uint8(config.Region1MBSize)))
	_, _ = mbSection.NewKey(keyRegion2, fmt.Sprint(uint8(config.Region2MBSize)))

	return iniFile.WriteTo(w)
}

func writeTiming(iniFile *ini.File, name string, spec timing.Spec) *ini.Section {
	section, _ := iniFile.NewSection(name)
	_, _ = section.NewKey(keyBaudrate, fmt.Sprint(spec.Baudrate))
	_, _ = section.NewKey(keyJumpWidth, fmt.Sprint(spec.JumpWidth))
	_, _ = section.NewKey(keyPhaseSeg1, fmt.Sprint(spec.PhaseSeg1))
	_, _ = section.NewKey(keyPhaseSeg2, fmt.Sprint(spec.PhaseSeg2))
	_, _ = section.NewKey(keyPropSeg, fmt.Sprint(spec.PropSeg))
	return section
}
