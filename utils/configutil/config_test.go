package configutil

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	goodConfig = `
listen_address: localhost:4385
buffer_space: 1024
X:
  Y:
    V: val1
    Z:
      K1: v1
servers:
    - somewhere-sjc1:8090
    - somewhere-else-sjc1:8010
`

	invalidConfig = `
listen_address:
buffer_space: 1
servers:
`
	goodExtendsConfig = `
extends: %s
buffer_space: 512
X:
  Y:
    Z:
      K2: v2
servers:
    - somewhere-sjc2:8090
    - somewhere-else-sjc2:8010
`
)

type configuration struct {
	ListenAddress string   `yaml:"listen_address" validate:"nonzero"`
	BufferSpace   int      `yaml:"buffer_space" validate:"min=255"`
	Servers       []string `validate:"nonzero"`
	X             Xconfig  `yaml:"X"`
}

type Xconfig struct {
	Y Yconfig `yaml:"Y"`
}

type Yconfig struct {
	V string  `yaml:"V"`
	Z Zconfig `yaml:"Z"`
}

type Zconfig struct {
	K1 string `yaml:"K1"`
	K2 string `yaml:"K2"`
}

func writeFile(t *testing.T, contents string) string {
	f, err := ioutil.TempFile("", "configtest")
	require.NoError(t, err)

	defer f.Close()

	_, err = f.Write([]byte(contents))
	require.NoError(t, err)

	return f.Name()
}

func TestLoad(t *testing.T) {
	fname := writeFile(t, goodConfig)
	defer os.Remove(fname)

	var cfg configuration
	err := Load(fname, &cfg)
	require.NoError(t, err)
	assert.Equal(t, "localhost:4385", cfg.ListenAddress)
	assert.Equal(t, 1024, cfg.BufferSpace)
	assert.Equal(t, []string{"somewhere-sjc1:8090", "somewhere-else-sjc1:8010"}, cfg.Servers)
}

func TestLoadExtends(t *testing.T) {
	base := writeFile(t, goodConfig)
	defer os.Remove(base)

	extends := writeFile(t, fmt.Sprintf(goodExtendsConfig, base))
	defer os.Remove(extends)

	var cfg configuration
	err := Load(extends, &cfg)
	require.NoError(t, err)

	// Values from the extending file win; missing ones fall through.
	assert.Equal(t, "localhost:4385", cfg.ListenAddress)
	assert.Equal(t, 512, cfg.BufferSpace)
	assert.Equal(t, []string{"somewhere-sjc2:8090", "somewhere-else-sjc2:8010"}, cfg.Servers)

	// Maps are deep merged.
	assert.Equal(t, "val1", cfg.X.Y.V)
	assert.Equal(t, "v1", cfg.X.Y.Z.K1)
	assert.Equal(t, "v2", cfg.X.Y.Z.K2)
}

func TestLoadValidation(t *testing.T) {
	fname := writeFile(t, invalidConfig)
	defer os.Remove(fname)

	var cfg configuration
	err := Load(fname, &cfg)
	require.Error(t, err)

	verr, ok := err.(ValidationError)
	require.True(t, ok)
	require.Error(t, verr.ErrForField("ListenAddress"))
}

func TestLoadCycleRef(t *testing.T) {
	f1, err := ioutil.TempFile("", "configtest")
	require.NoError(t, err)
	defer os.Remove(f1.Name())

	f2, err := ioutil.TempFile("", "configtest")
	require.NoError(t, err)
	defer os.Remove(f2.Name())

	_, err = f1.WriteString(fmt.Sprintf("extends: %s\n", f2.Name()))
	require.NoError(t, err)
	require.NoError(t, f1.Close())

	_, err = f2.WriteString(fmt.Sprintf("extends: %s\n", f1.Name()))
	require.NoError(t, err)
	require.NoError(t, f2.Close())

	var cfg configuration
	require.Equal(t, ErrCycleRef, Load(f1.Name(), &cfg))
}
