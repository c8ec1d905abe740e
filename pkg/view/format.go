/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package view turns snapshots into render-ready rows. It has no terminal
// dependencies so the same output can back any front end.
package view

import (
	"fmt"
	"strconv"

	"github.com/carverauto/devicewatch/pkg/models"
)

// NotAvailable stands in for absent values.
const NotAvailable = "N/A"

// Emphasis hints how a cell should be highlighted.
type Emphasis int

const (
	EmphasisNone Emphasis = iota
	EmphasisGood
	EmphasisBad
	EmphasisPrimary
	EmphasisSecondary
)

// Cell is one rendered table value.
type Cell struct {
	Text     string
	Emphasis Emphasis
}

func plain(text string) Cell {
	return Cell{Text: text}
}

// FormatTimestamp renders ts as MM/DD/YYYY, HH:MM:SS in local time.
func FormatTimestamp(ts models.Timestamp) string {
	return ts.Display()
}

// FormatMeasure renders v to two decimals followed by unit.
func FormatMeasure(v *float64, unit string) string {
	if v == nil {
		return NotAvailable
	}

	return fmt.Sprintf("%.2f %s", *v, unit)
}

// FormatPercent renders a packet-loss style percentage without rounding.
func FormatPercent(v *float64) string {
	if v == nil {
		return NotAvailable
	}

	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}

	return *v
}
