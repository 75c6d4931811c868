// Package pathclean repairs malformed filesystem paths before audio files
// are handed to the decoder.
//
// The repair targets one known artifact: a relative segment that was
// re-prefixed with a full absolute path, yielding a doubled volume root such
// as "E:\work\E:\work\clip.wav". The fix keeps the tail starting at the last
// volume root. This is a heuristic for that single-duplication artifact, not
// a general path parser; paths that legitimately contain multiple volume
// separators can be mis-repaired.
package pathclean
