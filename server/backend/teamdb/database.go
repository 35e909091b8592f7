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

// Package teamdb implements the authoritative team storage of the reference
// server using an in-memory database.
package teamdb

import (
	"context"
	"fmt"
	gotime "time"

	"github.com/hashicorp/go-memdb"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/pkg/errors"
)

// TeamInfo is the stored form of a team, including its password hashes.
// Hashes never leave this package except to the auth layer.
type TeamInfo struct {
	ID                 string
	Name               string
	AdminPasswordHash  string
	MemberPasswordHash string
	Members            []types.Member
	Groups             []types.Group
	CreatedAt          gotime.Time
	UpdatedAt          gotime.Time
}

// DeepCopy returns a deep copy of this TeamInfo.
func (i *TeamInfo) DeepCopy() *TeamInfo {
	if i == nil {
		return nil
	}

	copied := *i
	copied.Members = make([]types.Member, len(i.Members))
	copy(copied.Members, i.Members)
	copied.Groups = make([]types.Group, len(i.Groups))
	copy(copied.Groups, i.Groups)
	return &copied
}

// ToTeam converts this TeamInfo into the public Team type.
func (i *TeamInfo) ToTeam() types.Team {
	copied := i.DeepCopy()
	return types.Team{
		ID:      types.ID(copied.ID),
		Name:    copied.Name,
		Members: copied.Members,
		Groups:  copied.Groups,
	}
}

// DB is an in-memory team database.
type DB struct {
	db *memdb.MemDB
}

// New returns a new in-memory team database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{
		db: memDB,
	}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// CreateTeam creates a team with the given name and password hashes.
func (d *DB) CreateTeam(
	_ context.Context,
	name string,
	adminPasswordHash string,
	memberPasswordHash string,
) (*TeamInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	now := gotime.Now()
	info := &TeamInfo{
		ID:                 types.NewID().String(),
		Name:               name,
		AdminPasswordHash:  adminPasswordHash,
		MemberPasswordHash: memberPasswordHash,
		Members:            []types.Member{},
		Groups:             []types.Group{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := txn.Insert(tblTeams, info); err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// FindTeam returns the team with the given id.
func (d *DB) FindTeam(_ context.Context, id types.ID) (*TeamInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblTeams, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	if raw == nil {
		return nil, errors.NotFound(fmt.Sprintf("team %s", id))
	}

	return raw.(*TeamInfo).DeepCopy(), nil
}

// UpdateTeam applies the given mutation to the team inside one write
// transaction and returns the updated team. The mutation receives a deep
// copy it may modify freely.
func (d *DB) UpdateTeam(
	_ context.Context,
	id types.ID,
	mutate func(info *TeamInfo) error,
) (*TeamInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblTeams, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	if raw == nil {
		return nil, errors.NotFound(fmt.Sprintf("team %s", id))
	}

	info := raw.(*TeamInfo).DeepCopy()
	if err := mutate(info); err != nil {
		return nil, err
	}
	info.UpdatedAt = gotime.Now()

	if err := txn.Insert(tblTeams, info); err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// ListTeams returns all teams sorted by insertion order of the id index.
func (d *DB) ListTeams(_ context.Context) ([]*TeamInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tblTeams, "id")
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	var infos []*TeamInfo
	for raw := it.Next(); raw != nil; raw = it.Next() {
		infos = append(infos, raw.(*TeamInfo).DeepCopy())
	}
	return infos, nil
}
