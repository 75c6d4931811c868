// Package classifier bridges the pipeline to an external acoustic emotion
// model. The model runs out of process: a runner command receives the clip
// path and prints a JSON verdict with per-label probabilities.
//
// The Adapter front-loads the path sanitization and in-process decode that
// model runtimes commonly fumble, so the runner always receives a path that
// is known to name a real, decodable WAV file.
package classifier
