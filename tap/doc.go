// Package tap provides read-only observation points for the engine's
// post-mix signal. Each tap implements engine.Tap and exposes a
// lock-guarded snapshot that a UI or CLI can poll from another
// goroutine:
//
//   - Meter: per-block peak and RMS levels, linear and dB.
//   - Spectrum: Hann-windowed FFT magnitudes in dB.
//   - Loudness: EBU R128 momentary/short-term/integrated loudness.
//
// Taps never modify the audio path.
package tap
