package scenario

import (
	"github.com/rs/zerolog"

	"github.com/s0up4200/holocron/swapi"
)

// Separator is logged between entities of a multi-entity listing
const Separator = "----------- ### -----------"

// Describer logs entities field by field
type Describer struct {
	logger zerolog.Logger
}

// NewDescriber creates a Describer writing to logger
func NewDescriber(logger zerolog.Logger) *Describer {
	return &Describer{logger: logger}
}

// Describe logs every key/value pair of the entity at info level
func (d *Describer) Describe(entity swapi.Entity) {
	for _, key := range swapi.SortedKeys(entity) {
		d.logger.Info().Msgf("%s: %s", key, swapi.FormatValue(entity[key]))
	}
}

// DescribeAll logs each entity preceded by the separator line
func (d *Describer) DescribeAll(entities []swapi.Entity) {
	for _, e := range entities {
		d.logger.Info().Msg(Separator)
		d.Describe(e)
	}
}
