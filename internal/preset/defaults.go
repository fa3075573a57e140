// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preset

// defaultExtensions lists the media extensions recognized out of the box.
var defaultExtensions = []string{
	"jpg", "jpeg", "png", "webp", "avif", "gif", "bmp", "tif", "tiff", "heic",
	"mp4", "mkv", "webm", "mov", "avi", "m4v", "flv",
	"mp3", "wav", "flac", "ogg", "m4a", "opus",
}

var defaultPresets = []FormatPreset{
	{
		Key:         "png",
		Args:        []string{"-compression_level", "9"},
		Description: "Lossless image",
		Glyph:       "🖼",
		MenuKey:     "p",
	},
	{
		Key:         "jpg",
		Args:        []string{"-pix_fmt", "yuvj420p"},
		Description: "JPEG image",
		Glyph:       "📷",
		MenuKey:     "j",
	},
	{
		Key:         "webp",
		Args:        []string{"-c:v", "libwebp"},
		Description: "WebP image",
		Glyph:       "🌐",
		MenuKey:     "e",
	},
	{
		Key:         "avif",
		Args:        []string{"-c:v", "libaom-av1", "-still-picture", "1"},
		Description: "AVIF image",
		Glyph:       "✨",
		MenuKey:     "a",
	},
	{
		Key:         "gif",
		Args:        []string{"-loop", "0"},
		Description: "Animated GIF",
		Glyph:       "🎞",
		MenuKey:     "g",
	},
	{
		Key:         "mp4",
		Args:        []string{"-c:v", "libx264", "-preset", "medium", "-c:a", "aac", "-movflags", "+faststart"},
		Description: "H.264 video",
		Glyph:       "🎬",
		MenuKey:     "m",
	},
	{
		Key:         "webm",
		Args:        []string{"-c:v", "libvpx-vp9", "-c:a", "libopus"},
		Description: "VP9 video",
		Glyph:       "📼",
		MenuKey:     "v",
	},
	{
		Key:         "mp3",
		Args:        []string{"-vn", "-c:a", "libmp3lame", "-metadata", "comment=converted by mediaconv"},
		Description: "MP3 audio",
		Glyph:       "🎵",
		MenuKey:     "u",
	},
}

// Default returns the built-in preset table.
func Default() *Table {
	t, err := NewTable(defaultPresets)
	if err != nil {
		panic("preset: invalid built-in table: " + err.Error())
	}
	return t
}

// DefaultExtensions returns the built-in media extension set.
func DefaultExtensions() Extensions {
	return NewExtensions(defaultExtensions...)
}
