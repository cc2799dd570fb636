// Package sink provides engine outputs: real-time playback through the
// system audio device (oto) and offline rendering into WAV files
// (go-audio/wav). Both consume the interleaved stereo float32 blocks
// the engine's Run loop produces.
package sink
