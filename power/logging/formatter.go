// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const internalTimeFormat = "02 Jan 2006 15:04:05.000"

// InternalFormatter writes one line per entry:
//
//	<time> [<level>] <message> key=value ...
//
// Fields are sorted by key.
type InternalFormatter struct{}

// Format implements logrus.Formatter.
func (f *InternalFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	b.WriteString(entry.Time.UTC().Format(internalTimeFormat))
	fmt.Fprintf(b, " [%s] ", strings.ToUpper(entry.Level.String()))
	b.WriteString(strings.TrimRight(entry.Message, "\n"))

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, formatValue(entry.Data[k]))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatValue(v interface{}) interface{} {
	switch value := v.(type) {
	case error:
		return value.Error()
	case time.Duration:
		return value.String()
	}
	return v
}
