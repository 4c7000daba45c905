package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClimateCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/climate/ab12cd34_climate/temperature/set"
	r := climateCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "ab12cd34_climate", "climate id extract")
	assert.Equal(matches[0][2], "temperature", "field extract")
}

func TestClimateCommandParseFail(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/climate/ab12cd34_climate/mode/state"
	r := climateCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(len(matches), 0, "no matches")
}

func TestNumberCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/number/ab12cd34_maximum_boiler_temperature/set"
	r := numberCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "ab12cd34_maximum_boiler_temperature", "number id extract")
}

func TestNumberCommandParseFail(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/sensor/ab12cd34_temperature/state"
	r := numberCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(len(matches), 0, "no matches")
}
