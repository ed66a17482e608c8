/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Logging
 */

package ipp

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Default limits for the file logger rotation
const (
	LogMaxFileSize    = 256 * 1024
	LogMaxBackupFiles = 5
)

var (
	logMessagePool = sync.Pool{New: func() interface{} { return &LogMessage{} }}
	logBufferPool  = sync.Pool{New: func() interface{} { return &bytes.Buffer{} }}
)

// LogLevel is a mask of enabled log levels
type LogLevel int

// Log levels. These are bits and may be combined
const (
	LogError LogLevel = 1 << iota
	LogInfo
	LogDebug
	LogTraceIPP
	LogTraceHTTP

	LogAll      = LogError | LogInfo | LogDebug | LogTraceAll
	LogTraceAll = LogTraceIPP | LogTraceHTTP
)

// Logger implements logging facilities.
//
// Logger is safe for concurrent use. Each message, created by
// Begin and finished by Commit, appears in the output atomically.
type Logger struct {
	lock     sync.Mutex   // Write lock
	levels   LogLevel     // Enabled levels
	path     string       // Path to log file, "" if not file logger
	maxSize  int64        // Max file size before rotation
	backups  int          // Count of gzip-ed backup files
	time     bytes.Buffer // Time prefix buffer
	out      io.Writer    // Output stream
	file     *os.File     // Output file, for file logger
	withTime bool         // Prepend lines with time stamp
}

// NewLogger creates a logger that writes into the io.Writer
func NewLogger(out io.Writer, levels LogLevel) *Logger {
	return &Logger{
		levels: levels,
		out:    out,
	}
}

// NewFileLogger creates a logger that appends to the file at the
// specified path. The file is opened on demand and rotated when it
// grows beyond maxSize bytes; up to backups gzip-compressed copies
// are kept
func NewFileLogger(path string, levels LogLevel,
	maxSize int64, backups int) *Logger {

	if maxSize <= 0 {
		maxSize = LogMaxFileSize
	}

	if backups < 0 {
		backups = LogMaxBackupFiles
	}

	return &Logger{
		levels:   levels,
		path:     path,
		maxSize:  maxSize,
		backups:  backups,
		withTime: true,
	}
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return NewLogger(io.Discard, 0)
}

// Levels returns mask of enabled log levels
func (l *Logger) Levels() LogLevel {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.levels
}

// SetLevels changes mask of enabled log levels
func (l *Logger) SetLevels(levels LogLevel) {
	l.lock.Lock()
	l.levels = levels
	l.lock.Unlock()
}

// Close the logger
func (l *Logger) Close() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.out = nil
		return err
	}

	return nil
}

// Begin new log message
func (l *Logger) Begin() *LogMessage {
	msg := logMessagePool.Get().(*LogMessage)
	msg.logger = l
	msg.levels = l.Levels()
	return msg
}

// Debug writes a LogDebug message
func (l *Logger) Debug(prefix byte, format string, args ...interface{}) {
	l.Begin().Debug(prefix, format, args...).Commit()
}

// Info writes a LogInfo message
func (l *Logger) Info(prefix byte, format string, args ...interface{}) {
	l.Begin().Info(prefix, format, args...).Commit()
}

// Error writes a LogError message
func (l *Logger) Error(prefix byte, format string, args ...interface{}) {
	l.Begin().Error(prefix, format, args...).Commit()
}

// Format a time prefix
func (l *Logger) fmtTime() {
	l.time.Reset()

	if !l.withTime {
		return
	}

	now := time.Now()

	year, month, day := now.Date()
	fmt.Fprintf(&l.time, "%2.2d-%2.2d-%4.4d ", day, month, year)

	hour, min, sec := now.Clock()
	fmt.Fprintf(&l.time, "%2.2d:%2.2d:%2.2d", hour, min, sec)

	l.time.WriteString(": ")
}

// Open log file on demand. Called under the lock
func (l *Logger) open() {
	if l.out != nil || l.path == "" {
		return
	}

	os.MkdirAll(filepath.Dir(l.path), 0755)
	file, err := os.OpenFile(l.path,
		os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)

	if err == nil {
		l.file = file
		l.out = file
	}
}

// Handle log rotation
func (l *Logger) rotate() {
	if l.file == nil {
		return
	}

	// Do we need to rotate?
	stat, err := l.file.Stat()
	if err != nil || stat.Size() <= l.maxSize {
		return
	}

	// Perform rotation
	prevpath := ""
	for i := l.backups; i >= 0; i-- {
		nextpath := l.path
		if i > 0 {
			nextpath += fmt.Sprintf(".%d.gz", i-1)
		}

		switch i {
		case l.backups:
			os.Remove(nextpath)
		case 0:
			err := l.gzip(nextpath, prevpath)
			if err == nil {
				l.file.Truncate(0)
			}
		default:
			os.Rename(nextpath, prevpath)
		}

		prevpath = nextpath
	}
}

// gzip the log file
func (l *Logger) gzip(ipath, opath string) error {
	if opath == "" {
		return nil
	}

	// Open input file
	ifile, err := os.Open(ipath)
	if err != nil {
		return err
	}

	defer ifile.Close()

	// Open output file
	ofile, err := os.OpenFile(opath, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	// gzip ifile->ofile
	w := gzip.NewWriter(ofile)
	_, err = io.Copy(w, ifile)
	err2 := w.Close()
	err3 := ofile.Close()

	switch {
	case err == nil && err2 != nil:
		err = err2
	case err == nil && err3 != nil:
		err = err3
	}

	// Cleanup and exit
	if err != nil {
		os.Remove(opath)
	}

	return err
}

// LogMessage represents a single (possible multi line) log
// message, which will appear in the output log atomically,
// and will not be interrupted in the middle by other log activity
type LogMessage struct {
	logger *Logger         // Underlying logger
	levels LogLevel        // Levels enabled when message was started
	lines  []*bytes.Buffer // One buffer per line
}

// Enabled reports whether any of levels is enabled for this message
func (msg *LogMessage) Enabled(levels LogLevel) bool {
	return msg.levels&levels != 0
}

// add formats a next line of log message, with level and prefix char
func (msg *LogMessage) add(level LogLevel, prefix byte,
	format string, args ...interface{}) *LogMessage {

	if !msg.Enabled(level) {
		return msg
	}

	buf := logBufAlloc()
	buf.Write([]byte{prefix, ' '})
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
	msg.lines = append(msg.lines, buf)
	return msg
}

// Debug writes a LogDebug message
func (msg *LogMessage) Debug(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogDebug, prefix, format, args...)
}

// Info writes a LogInfo message
func (msg *LogMessage) Info(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogInfo, prefix, format, args...)
}

// Error writes a LogError message
func (msg *LogMessage) Error(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogError, prefix, format, args...)
}

// Trace writes a message at one of LogTrace levels
func (msg *LogMessage) Trace(level LogLevel, prefix byte,
	format string, args ...interface{}) *LogMessage {
	return msg.add(level, prefix, format, args...)
}

// Write implements io.Writer interface. Text is automatically
// split into lines
func (msg *LogMessage) Write(text []byte) (n int, err error) {
	n, err = len(text), nil

	for len(text) > 0 {
		// Fetch next line
		var line []byte

		if l := bytes.IndexByte(text, '\n'); l >= 0 {
			l++
			line = text[:l]
			text = text[l:]
		} else {
			line = text
			text = nil
		}

		// Save the line
		if cnt := len(msg.lines); cnt > 0 && !logBufTerminated(msg.lines[cnt-1]) {
			buf := msg.lines[cnt-1]
			if buf.Len() == 0 {
				buf.Write([]byte("  "))
			}
			buf.Write(line)
		} else {
			buf := logBufAlloc()
			if len(line) != 0 {
				buf.Write([]byte("  "))
				buf.Write(line)
			}
			msg.lines = append(msg.lines, buf)
		}
	}

	return
}

// Dump writes HEX dump of data at the specified level, with
// optional title. If title is not "", it is formatted, as
// fmt.Printf does, and prepended to the dump
func (msg *LogMessage) Dump(level LogLevel, data []byte,
	title string, args ...interface{}) *LogMessage {

	if !msg.Enabled(level) {
		return msg
	}

	if title != "" {
		msg.add(level, ' ', title, args...)
	}

	hex := logBufAlloc()
	chr := logBufAlloc()

	defer logBufFree(hex)
	defer logBufFree(chr)

	off := 0

	for len(data) > 0 {
		hex.Reset()
		chr.Reset()

		sz := len(data)
		if sz > 16 {
			sz = 16
		}

		i := 0
		for ; i < sz; i++ {
			c := data[i]
			fmt.Fprintf(hex, "%2.2x", data[i])
			if i%4 == 3 {
				hex.Write([]byte(":"))
			} else {
				hex.Write([]byte(" "))
			}

			if 0x20 <= c && c < 0x80 {
				chr.WriteByte(c)
			} else {
				chr.WriteByte('.')
			}
		}

		for ; i < 16; i++ {
			hex.WriteString("   ")
		}

		msg.add(level, ' ', "%4.4x: %s %s", off, hex, chr)

		off += sz
		data = data[sz:]
	}

	return msg
}

// Commit message to the log
func (msg *LogMessage) Commit() {
	// Don't forget to free the message
	defer msg.free()

	// Ignore empty messages
	if len(msg.lines) == 0 {
		return
	}

	// Lock the logger
	l := msg.logger
	l.lock.Lock()
	defer l.lock.Unlock()

	l.open()
	if l.out == nil {
		return
	}

	// Rotate now
	l.rotate()

	// Send message content to the logger
	l.fmtTime()
	for _, line := range msg.lines {
		if !logBufTerminated(line) {
			line.WriteByte('\n')
		}
		l.out.Write(l.time.Bytes())
		l.out.Write(line.Bytes())
	}
}

// Reject the message
func (msg *LogMessage) Reject() {
	msg.free()
}

// Return message to the logMessagePool
func (msg *LogMessage) free() {
	for _, l := range msg.lines {
		logBufFree(l)
	}

	// Reset the message and put it to the pool
	if len(msg.lines) < 16 {
		msg.lines = msg.lines[:0] // Keep memory, reset content
	} else {
		msg.lines = nil
	}

	msg.logger = nil
	msg.levels = 0

	// Put the message
	logMessagePool.Put(msg)
}

// Check if line buffer is '\n'-terminated
func logBufTerminated(buf *bytes.Buffer) bool {
	if l := buf.Len(); l > 0 {
		return buf.Bytes()[l-1] == '\n'
	}
	return false
}

// Allocate a buffer
func logBufAlloc() *bytes.Buffer {
	return logBufferPool.Get().(*bytes.Buffer)
}

// Free a buffer
func logBufFree(buf *bytes.Buffer) {
	if buf.Cap() <= 256 {
		buf.Reset()
		logBufferPool.Put(buf)
	}
}
