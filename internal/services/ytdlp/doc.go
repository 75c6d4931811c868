// Package ytdlp shells out to yt-dlp to acquire remote media into the
// workspace.
package ytdlp
