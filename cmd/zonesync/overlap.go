/*
 * Copyright 2026 The ZoneSync Authors. All rights reserved.
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

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/pkg/overlap"
	"github.com/zonesync-team/zonesync/pkg/tzone"
)

var (
	flagTeamPath string
	flagViewerTZ string
)

func newOverlapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overlap [options]",
		Short: "Show the working-hours overlap of a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagTeamPath == "" {
				return errors.New("team file is required")
			}

			teamData, err := readTeamFile(flagTeamPath)
			if err != nil {
				return err
			}
			if len(teamData.Members) == 0 {
				return errors.New("team has no members")
			}

			viewerName := flagViewerTZ
			if viewerName == "" {
				viewerName = time.Local.String()
			}
			viewer, err := tzone.LoadLocation(viewerName)
			if err != nil {
				return err
			}

			return printOverlap(cmd, teamData, viewer, viewerName)
		},
	}
}

func readTeamFile(path string) (types.Team, error) {
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return types.Team{}, fmt.Errorf("read team file: %w", err)
	}

	var teamData types.Team
	if err := yaml.Unmarshal(bytes, &teamData); err != nil {
		return types.Team{}, fmt.Errorf("unmarshal team file: %w", err)
	}
	return teamData, nil
}

func printOverlap(cmd *cobra.Command, teamData types.Team, viewer *time.Location, viewerName string) error {
	now := time.Now()

	tw := table.NewWriter()
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateFooter = false
	tw.Style().Options.SeparateHeader = false
	tw.Style().Options.SeparateRows = false
	tw.AppendHeader(table.Row{
		"NAME",
		"TIMEZONE",
		"LOCAL TIME",
		"HOURS",
		"STATUS",
		fmt.Sprintf("DAY IN %s", strings.ToUpper(viewerName)),
	})

	masks := make([]overlap.Mask, 0, len(teamData.Members))
	for _, member := range teamData.Members {
		loc, err := tzone.LoadLocation(member.Timezone)
		if err != nil {
			return err
		}

		mask, err := overlap.MemberMaskAt(now, viewer, member)
		if err != nil {
			return err
		}
		masks = append(masks, mask)

		tw.AppendRow(table.Row{
			member.Name,
			member.Timezone,
			now.In(loc).Format("15:04"),
			fmt.Sprintf("%02d:00 - %02d:00", member.WorkingHoursStart, member.WorkingHoursEnd),
			memberStatus(now, loc, member),
			renderMask(mask),
		})
	}

	intersection := overlap.Intersect(masks...)
	tw.AppendFooter(table.Row{
		"OVERLAP",
		"",
		"",
		overlap.Summary(intersection),
		fmt.Sprintf("%d hour(s)", intersection.Count()),
		renderMask(intersection),
	})
	cmd.Printf("%s\n", tw.Render())

	for _, window := range overlap.Windows(intersection) {
		cmd.Printf("  shared: %s\n", window)
	}
	return nil
}

func memberStatus(now time.Time, loc *time.Location, member types.Member) string {
	if tzone.IsWorkingAt(now, loc, member.WorkingHoursStart, member.WorkingHoursEnd) {
		return "working"
	}

	minutes, err := tzone.MinutesUntilAvailableAt(now, loc, member.WorkingHoursStart, member.WorkingHoursEnd)
	if err != nil {
		return "never working"
	}
	return fmt.Sprintf("in %dh %02dm", minutes/60, minutes%60)
}

// renderMask draws the 24 hour slots of a mask, one rune per hour.
func renderMask(mask overlap.Mask) string {
	var b strings.Builder
	for _, working := range mask {
		if working {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func init() {
	cmd := newOverlapCmd()
	cmd.Flags().StringVarP(
		&flagTeamPath,
		"team",
		"t",
		"",
		"Path of the team YAML file",
	)
	cmd.Flags().StringVar(
		&flagViewerTZ,
		"tz",
		"",
		"Viewer IANA timezone, defaults to the system timezone",
	)
	rootCmd.AddCommand(cmd)
}
