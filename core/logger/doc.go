// Package logger records interpreter sessions as newline delimited JSON events
// and builds reports from them.
package logger
