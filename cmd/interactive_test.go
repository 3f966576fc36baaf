package cmd

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Beastly713/stegtext/pkg/pipeline"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCarrier(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 3), G: uint8(y * 5), B: 77, A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func testModel(dir string) model {
	m := model{
		path:      dir,
		textInput: textinput.New(),
		opts:      pipeline.DefaultOptions(),
		suffix:    "_stego",
	}
	m.loadFiles()
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestInteractiveHideAndReveal(t *testing.T) {
	dir := t.TempDir()
	writeCarrier(t, filepath.Join(dir, "carrier.png"), 32, 32)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	m := testModel(dir)
	require.Len(t, m.files, 2, "parent entry plus the one image")
	assert.Equal(t, "carrier.png", m.files[1].name)

	// Select the image and start composing.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, key("h"))
	require.Equal(t, modeCompose, m.mode)
	assert.Equal(t, 32*32*3/8-4, m.textInput.CharLimit)

	m, _ = press(t, m, key("meet at noon"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, modeBrowse, m.mode)

	m, _ = press(t, m, cmd())
	assert.Contains(t, m.status, "Success!")
	assert.FileExists(t, filepath.Join(dir, "carrier_stego.png"))

	// The new file shows up in the listing; reveal it.
	var idx int
	for i, f := range m.files {
		if f.name == "carrier_stego.png" {
			idx = i
		}
	}
	require.NotZero(t, idx)
	m.cursor = idx

	m, cmd = press(t, m, key("r"))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	assert.Equal(t, "meet at noon", m.revealed)
	assert.Contains(t, m.View(), "meet at noon")
}

func TestInteractiveRevealNoMessage(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	f, err := os.Create(filepath.Join(dir, "blank.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	m := testModel(dir)
	m.cursor = 1

	m, cmd := press(t, m, key("r"))
	m, _ = press(t, m, cmd())
	assert.Empty(t, m.revealed)
	assert.Contains(t, m.status, NoMessageText)
}

func TestInteractiveComposeCancel(t *testing.T) {
	dir := t.TempDir()
	writeCarrier(t, filepath.Join(dir, "a.png"), 16, 16)

	m := testModel(dir)
	m.cursor = 1
	m, _ = press(t, m, key("h"))
	require.Equal(t, modeCompose, m.mode)

	// 'q' is text while composing, not quit.
	m, _ = press(t, m, key("q"))
	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.textInput.Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeBrowse, m.mode)
	assert.NoFileExists(t, filepath.Join(dir, "a_stego.png"))
}

func TestOutputPathFor(t *testing.T) {
	assert.Equal(t, filepath.Join("photos", "cat_stego.png"), outputPathFor(filepath.Join("photos", "cat.jpg"), "_stego", "png"))
	assert.Equal(t, "scan.hidden.bmp", outputPathFor("scan.bmp", ".hidden", "bmp"))
}

func TestInteractiveComposeRefusesTinyImage(t *testing.T) {
	dir := t.TempDir()
	// 2x2 pixels carry 12 bits, not even the length prefix.
	writeCarrier(t, filepath.Join(dir, "tiny.png"), 2, 2)

	m := testModel(dir)
	m.cursor = 1
	m, cmd := press(t, m, key("h"))

	assert.Nil(t, cmd)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.status, "too small")
}
