// Package media wraps platform decoding capability behind single-use
// Resource handles: video and audio run a wall-clock decode clock against
// ffprobe container metadata, video keeps a poster frame near its position
// via ffmpeg still extraction, and images decode once through the stdlib
// decoders. Splice never decodes or transcodes streams in-process.
//
// The Allocator is the only construction point; the playback engine owns
// the one-allocation-per-activation guarantee.
package media
