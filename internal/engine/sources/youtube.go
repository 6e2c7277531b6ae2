// Package sources talks to the YouTube endpoints that back transcript fetching.
//
// The YouTube client is split by endpoint:
//
//	youtube_innertube.go   Innertube /player request, player response types
//	youtube_transcript.go  caption track listing and selection, timedtext parsing
//	youtube_oembed.go      video title lookup with id fallback
package sources
