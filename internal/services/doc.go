// Package services holds the error taxonomy and context helpers shared by the
// external-tool clients (downloader, transcoder, model runner).
package services
