package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-artax/framework/container"
)

func TestBindings_GetIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	b := container.NewBindings().Set("App.Service", "Logger", "app.fileLogger")

	params, ok := b.Get("app.service")
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"logger": "app.fileLogger"}, params)

	_, ok = b.Get("app.other")
	assert.False(t, ok)
}

func TestBindings_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	b := container.NewBindings().Set("app.service", "logger", "app.fileLogger")

	params, _ := b.Get("app.service")
	params["logger"] = "tampered"

	again, _ := b.Get("app.service")
	assert.Equal(t, "app.fileLogger", again["logger"])
}

func TestBindings_WhenNeedsGive(t *testing.T) {
	t.Parallel()

	b := container.NewBindings()
	b.When("app.photoController").Needs("filesystem").Give("storage.s3").
		When("app.videoController").Needs("filesystem").Give("storage.local")

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, map[string]map[string]string{
		"app.photocontroller": {"filesystem": "storage.s3"},
		"app.videocontroller": {"filesystem": "storage.local"},
	}, b.All())
}

func TestBindings_Replace(t *testing.T) {
	t.Parallel()

	b := container.NewBindings().Set("app.old", "x", "app.y")
	b.Replace(map[string]map[string]string{
		"App.New": {"Logger": "app.consoleLogger"},
	})

	_, ok := b.Get("app.old")
	assert.False(t, ok)
	params, ok := b.Get("app.new")
	assert.True(t, ok)
	assert.Equal(t, "app.consoleLogger", params["logger"])
}
