package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathTargetAndDegrees(t *testing.T) {
	var empty Path
	assert.Equal(t, "102", empty.Target("102"))
	assert.Equal(t, 0, empty.Degrees())

	path := Path{{MovieID: "104257", PersonID: "129"}, {MovieID: "95953", PersonID: "163"}}
	assert.Equal(t, "163", path.Target("102"))
	assert.Equal(t, 2, path.Degrees())
}

func TestConnectionDegrees(t *testing.T) {
	assert.Equal(t, -1, Connection{Path: Path{{MovieID: "m", PersonID: "p"}}}.Degrees())
	assert.Equal(t, 1, Connection{Connected: true, Path: Path{{MovieID: "m", PersonID: "p"}}}.Degrees())
	assert.Equal(t, 0, Connection{Connected: true, Path: Path{}}.Degrees())
}
