/*
 *     Copyright 2026 The Modelgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CoreLogFileName = "core.log"
	GinLogFileName  = "gin.log"
)

const (
	defaultRotateMaxSize    = 200
	defaultRotateMaxBackups = 10
	defaultRotateMaxAge     = 7
)

const (
	encodeTimeFormat = "2006-01-02 15:04:05.000"
)

var levels []zap.AtomicLevel

// LogRotateConfig is the rotation policy of file loggers.
type LogRotateConfig struct {
	// Maximum size in megabytes of log files before rotation.
	MaxSize int

	// Maximum number of days to retain old log files.
	MaxAge int

	// Maximum number of old log files to keep.
	MaxBackups int
}

func (c LogRotateConfig) withDefaults() LogRotateConfig {
	if c.MaxSize <= 0 {
		c.MaxSize = defaultRotateMaxSize
	}

	if c.MaxAge <= 0 {
		c.MaxAge = defaultRotateMaxAge
	}

	if c.MaxBackups <= 0 {
		c.MaxBackups = defaultRotateMaxBackups
	}

	return c
}

// CreateLogger returns a json zap logger writing to a lumberjack rotated file.
func CreateLogger(filePath string, compress bool, verbose bool, rotateConfig LogRotateConfig) (*zap.Logger, zap.AtomicLevel, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	rotateConfig = rotateConfig.withDefaults()
	rotater := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    rotateConfig.MaxSize,
		MaxAge:     rotateConfig.MaxAge,
		MaxBackups: rotateConfig.MaxBackups,
		LocalTime:  true,
		Compress:   compress,
	}
	syncer := zapcore.AddSync(rotater)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(encodeTimeFormat)

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		syncer,
		level,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1)), level, nil
}
