/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Client configuration
 */

package ipp

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"gopkg.in/ini.v1"
)

const (
	// ConfFileName defines a name of ipp-client configuration file
	ConfFileName = "ipp-client.conf"
)

// Config contains parameters of the Client. These parameters
// are fixed when Client is created
type Config struct {
	URL      string        `ini:"url" validate:"required,url"` // Printer or server URL
	Username string        `ini:"username"`                    // User name, optional
	Password string        `ini:"password"`                    // Password, optional
	Timeout  time.Duration `ini:"timeout" validate:"gte=0"`    // Per-request timeout, 0 for default
}

// Configuration represents a complete configuration, loaded
// from the configuration file
type Configuration struct {
	Server            Config   // Connection parameters
	LogLevels         LogLevel // LogLevel mask
	LogFile           string   // Log file, "" for console
	LogMaxFileSize    int64    // Maximum log file size
	LogMaxBackupFiles uint     // Count of files preserved during rotation
	RateLimit         int      // Requests per second, 0 if unlimited
	RateBurst         int      // Throttle burst size
}

// DefaultConfiguration contains defaults for the values not
// set in the configuration file
var DefaultConfiguration = Configuration{
	Server: Config{
		URL:     "http://localhost:631",
		Timeout: DefaultTimeout,
	},
	LogLevels:         LogError,
	LogMaxFileSize:    LogMaxFileSize,
	LogMaxBackupFiles: LogMaxBackupFiles,
	RateBurst:         1,
}

var (
	confValidate   *validator.Validate
	confTranslator ut.Translator
)

func init() {
	confValidate = validator.New()

	var ok bool
	confTranslator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("conf: failed to get 'en' translator")
	}

	err := en_translations.RegisterDefaultTranslations(confValidate, confTranslator)
	if err != nil {
		panic(err)
	}

	confValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("ini"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// FieldError represents a single validation error for a specific field
type FieldError struct {
	Field string
	Err   string
}

// FieldErrors represents a collection of field errors
type FieldErrors []FieldError

// Error implements the error interface, returning a human-readable
// summary of all field errors
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}

// Validate checks the Config
func (cfg Config) Validate() error {
	if cfg.URL == "" {
		return ErrNoURL
	}

	err := confValidate.Struct(cfg)
	if err != nil {
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			fields = append(fields, FieldError{
				Field: verror.Field(),
				Err:   verror.Translate(confTranslator),
			})
		}

		return fields
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return err
	}

	if _, ok := schemeTransport[strings.ToLower(u.Scheme)]; !ok {
		return fmt.Errorf("%w: %q", ErrBadScheme, u.Scheme)
	}

	return nil
}

// hasCredentials reports whether both username and password are set
func (cfg Config) hasCredentials() bool {
	return cfg.Username != "" && cfg.Password != ""
}

// LoadConfig loads the configuration file. Values not set in
// the file are taken from DefaultConfiguration
func LoadConfig(path string) (*Configuration, error) {
	conf := DefaultConfiguration

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("conf: %w", err)
	}

	for _, section := range file.Sections() {
		for _, key := range section.Keys() {
			err = confLoadKey(&conf, section.Name(), key)
			if err != nil {
				return nil, fmt.Errorf("conf: %w", err)
			}
		}
	}

	err = conf.Server.Validate()
	if err != nil {
		return nil, fmt.Errorf("conf: %w", err)
	}

	return &conf, nil
}

// confLoadKey loads a single key of the configuration file
func confLoadKey(conf *Configuration, section string, key *ini.Key) error {
	switch section {
	case "server":
		switch key.Name() {
		case "url":
			conf.Server.URL = key.String()
		case "username":
			conf.Server.Username = key.String()
		case "password":
			conf.Server.Password = key.String()
		case "timeout":
			return confLoadDurationKey(&conf.Server.Timeout, key)
		}
	case "logging":
		switch key.Name() {
		case "level":
			return confLoadLogLevelKey(&conf.LogLevels, key)
		case "file":
			conf.LogFile = key.String()
		case "max-file-size":
			return confLoadSizeKey(&conf.LogMaxFileSize, key)
		case "max-backup-files":
			return confLoadUintKey(&conf.LogMaxBackupFiles, key)
		}
	case "client":
		switch key.Name() {
		case "rate":
			return confLoadIntKeyRange(&conf.RateLimit, key, 0, math.MaxInt32)
		case "burst":
			return confLoadIntKeyRange(&conf.RateBurst, key, 1, math.MaxInt32)
		}
	}

	return nil
}

// Create "bad value" error
func confBadValue(key *ini.Key, format string, args ...interface{}) error {
	return fmt.Errorf(key.Name()+": "+format, args...)
}

// Load duration key. Plain numbers are seconds
func confLoadDurationKey(out *time.Duration, key *ini.Key) error {
	s := strings.TrimSpace(key.String())

	if secs, err := strconv.ParseUint(s, 10, 32); err == nil {
		*out = time.Duration(secs) * time.Second
		return nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return confBadValue(key, "%q: invalid duration", s)
	}

	*out = d
	return nil
}

// Load LogLevel key
func confLoadLogLevelKey(out *LogLevel, key *ini.Key) error {
	var mask LogLevel
	for _, s := range strings.Split(key.String(), ",") {
		s = strings.TrimSpace(s)
		switch s {
		case "":
		case "none":
		case "error":
			mask |= LogError
		case "info":
			mask |= LogInfo | LogError
		case "debug":
			mask |= LogDebug | LogInfo | LogError
		case "trace-ipp":
			mask |= LogTraceIPP | LogDebug | LogInfo | LogError
		case "trace-http":
			mask |= LogTraceHTTP | LogDebug | LogInfo | LogError
		case "all", "trace-all":
			mask |= LogAll
		default:
			return confBadValue(key, "invalid log level %q", s)
		}
	}

	*out = mask
	return nil
}

// Load size key
func confLoadSizeKey(out *int64, key *ini.Key) error {
	units := uint64(1)
	value := strings.TrimSpace(key.String())

	if l := len(value); l > 0 {
		switch value[l-1] {
		case 'k', 'K':
			units = 1024
		case 'm', 'M':
			units = 1024 * 1024
		}

		if units != 1 {
			value = value[:l-1]
		}
	}

	sz, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return confBadValue(key, "%q: invalid size", value)
	}

	if sz > uint64(math.MaxInt64/units) {
		return confBadValue(key, "size too large")
	}

	*out = int64(sz * units)
	return nil
}

// Load unsigned integer key
func confLoadUintKey(out *uint, key *ini.Key) error {
	num, err := strconv.ParseUint(strings.TrimSpace(key.String()), 10, 0)
	if err != nil {
		return confBadValue(key, "%q: invalid number", key.String())
	}

	*out = uint(num)
	return nil
}

// Load integer key within the range
func confLoadIntKeyRange(out *int, key *ini.Key, min, max int) error {
	var val uint
	err := confLoadUintKey(&val, key)
	if err == nil && (val < uint(min) || val > uint(max)) {
		err = confBadValue(key, "must be in range %d...%d", min, max)
	}

	if err == nil {
		*out = int(val)
	}

	return err
}
