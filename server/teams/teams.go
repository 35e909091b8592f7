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

// Package teams provides the business logic of the reference team service:
// password authentication, token-gated reads and admin mutations, each
// mutation mirrored to the team's realtime channel.
package teams

import (
	"context"
	"fmt"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/api/types/events"
	"github.com/zonesync-team/zonesync/pkg/errors"
	"github.com/zonesync-team/zonesync/server/auth"
	"github.com/zonesync-team/zonesync/server/backend"
	"github.com/zonesync-team/zonesync/server/backend/teamdb"
)

// Service exposes the team operations of the reference server. It satisfies
// the client engine's TeamService and AuthService contracts in-process.
type Service struct {
	be *backend.Backend
}

// New creates an instance of Service.
func New(be *backend.Backend) *Service {
	return &Service{
		be: be,
	}
}

// CreateTeam creates a team guarded by the given passwords and returns the
// team together with an admin session.
func (s *Service) CreateTeam(
	ctx context.Context,
	name string,
	adminPassword string,
	memberPassword string,
) (types.Team, types.Session, error) {
	fields := types.TeamNameFields{Name: name}
	if err := fields.Validate(); err != nil {
		return types.Team{}, types.Session{}, errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	adminHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return types.Team{}, types.Session{}, err
	}
	memberHash, err := auth.HashPassword(memberPassword)
	if err != nil {
		return types.Team{}, types.Session{}, err
	}

	info, err := s.be.DB.CreateTeam(ctx, name, adminHash, memberHash)
	if err != nil {
		return types.Team{}, types.Session{}, err
	}

	session, err := s.be.TokenManager.Generate(types.ID(info.ID), types.RoleAdmin)
	if err != nil {
		return types.Team{}, types.Session{}, err
	}

	s.countOperation("create-team")
	return info.ToTeam(), session, nil
}

// Authenticate exchanges a team password for a session. The admin password
// yields an admin session, the member password a member session.
func (s *Service) Authenticate(
	ctx context.Context,
	teamID types.ID,
	password string,
) (types.Session, error) {
	info, err := s.be.DB.FindTeam(ctx, teamID)
	if err != nil {
		return types.Session{}, err
	}

	var role types.Role
	switch {
	case auth.CompareHashAndPassword(info.AdminPasswordHash, password):
		role = types.RoleAdmin
	case auth.CompareHashAndPassword(info.MemberPasswordHash, password):
		role = types.RoleMember
	default:
		return types.Session{}, errors.Unauthenticated("incorrect password")
	}

	return s.be.TokenManager.Generate(teamID, role)
}

// GetTeam returns the team and the role the token grants on it.
func (s *Service) GetTeam(
	ctx context.Context,
	teamID types.ID,
	token string,
) (types.Team, types.Role, error) {
	claims, err := s.verify(token, teamID)
	if err != nil {
		return types.Team{}, "", err
	}

	info, err := s.be.DB.FindTeam(ctx, teamID)
	if err != nil {
		return types.Team{}, "", err
	}

	return info.ToTeam(), types.Role(claims.Role), nil
}

// AddMember adds a member to the team.
func (s *Service) AddMember(
	ctx context.Context,
	teamID types.ID,
	token string,
	fields types.CreateMemberFields,
) (types.Member, error) {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return types.Member{}, err
	}
	if err := fields.Validate(); err != nil {
		return types.Member{}, errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	member := types.Member{
		ID:                types.NewID(),
		Name:              fields.Name,
		Title:             fields.Title,
		Timezone:          fields.Timezone,
		WorkingHoursStart: fields.WorkingHoursStart,
		WorkingHoursEnd:   fields.WorkingHoursEnd,
		GroupID:           fields.GroupID,
	}

	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		if member.GroupID != "" && !groupExists(info, member.GroupID) {
			return errors.InvalidArgument(fmt.Sprintf("unknown group %s", member.GroupID))
		}
		info.Members = append(info.Members, member)
		return nil
	}); err != nil {
		return types.Member{}, err
	}

	s.countOperation("add-member")
	s.publish(ctx, events.TeamEvent{
		Type:   types.MemberAddedEvent,
		TeamID: teamID,
		Member: &member,
	})
	return member, nil
}

// UpdateMember replaces the given fields of a member.
func (s *Service) UpdateMember(
	ctx context.Context,
	teamID types.ID,
	token string,
	memberID types.ID,
	fields types.UpdatableMemberFields,
) (types.Member, error) {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return types.Member{}, err
	}
	if err := fields.Validate(); err != nil {
		return types.Member{}, errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	var updated types.Member
	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		for i, m := range info.Members {
			if m.ID != memberID {
				continue
			}
			next := fields.ApplyTo(m)
			if next.GroupID != "" && !groupExists(info, next.GroupID) {
				return errors.InvalidArgument(fmt.Sprintf("unknown group %s", next.GroupID))
			}
			info.Members[i] = next
			updated = next
			return nil
		}
		return errors.NotFound(fmt.Sprintf("member %s", memberID))
	}); err != nil {
		return types.Member{}, err
	}

	s.countOperation("update-member")
	s.publish(ctx, events.TeamEvent{
		Type:   types.MemberUpdatedEvent,
		TeamID: teamID,
		Member: &updated,
	})
	return updated, nil
}

// RemoveMember removes a member from the team.
func (s *Service) RemoveMember(
	ctx context.Context,
	teamID types.ID,
	token string,
	memberID types.ID,
) error {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return err
	}

	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		for i, m := range info.Members {
			if m.ID == memberID {
				info.Members = append(info.Members[:i], info.Members[i+1:]...)
				return nil
			}
		}
		return errors.NotFound(fmt.Sprintf("member %s", memberID))
	}); err != nil {
		return err
	}

	s.countOperation("remove-member")
	s.publish(ctx, events.TeamEvent{
		Type:     types.MemberRemovedEvent,
		TeamID:   teamID,
		MemberID: memberID,
	})
	return nil
}

// ReorderMembers replaces the member order. Ids missing from the given
// sequence keep their relative order at the end, so the published order is
// always complete.
func (s *Service) ReorderMembers(
	ctx context.Context,
	teamID types.ID,
	token string,
	order []types.ID,
) error {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return err
	}

	var complete []types.ID
	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		byID := make(map[types.ID]types.Member, len(info.Members))
		for _, m := range info.Members {
			byID[m.ID] = m
		}

		reordered := make([]types.Member, 0, len(info.Members))
		seen := make(map[types.ID]bool, len(order))
		for _, id := range order {
			if m, ok := byID[id]; ok && !seen[id] {
				reordered = append(reordered, m)
				seen[id] = true
			}
		}
		for _, m := range info.Members {
			if !seen[m.ID] {
				reordered = append(reordered, m)
			}
		}

		info.Members = reordered
		complete = make([]types.ID, len(reordered))
		for i, m := range reordered {
			complete[i] = m.ID
		}
		return nil
	}); err != nil {
		return err
	}

	s.countOperation("reorder-members")
	s.publish(ctx, events.TeamEvent{
		Type:   types.MembersReorderedEvent,
		TeamID: teamID,
		Order:  complete,
	})
	return nil
}

// AddGroup creates a group at the end of the display order.
func (s *Service) AddGroup(
	ctx context.Context,
	teamID types.ID,
	token string,
	fields types.GroupFields,
) (types.Group, error) {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return types.Group{}, err
	}
	if err := fields.Validate(); err != nil {
		return types.Group{}, errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	var group types.Group
	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		group = types.Group{
			ID:    types.NewID(),
			Name:  fields.Name,
			Order: len(info.Groups),
		}
		info.Groups = append(info.Groups, group)
		return nil
	}); err != nil {
		return types.Group{}, err
	}

	s.countOperation("add-group")
	s.publish(ctx, events.TeamEvent{
		Type:   types.GroupCreatedEvent,
		TeamID: teamID,
		Group:  &group,
	})
	return group, nil
}

// UpdateGroup renames a group.
func (s *Service) UpdateGroup(
	ctx context.Context,
	teamID types.ID,
	token string,
	groupID types.ID,
	fields types.GroupFields,
) (types.Group, error) {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return types.Group{}, err
	}
	if err := fields.Validate(); err != nil {
		return types.Group{}, errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	var updated types.Group
	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		for i, g := range info.Groups {
			if g.ID == groupID {
				info.Groups[i].Name = fields.Name
				updated = info.Groups[i]
				return nil
			}
		}
		return errors.NotFound(fmt.Sprintf("group %s", groupID))
	}); err != nil {
		return types.Group{}, err
	}

	s.countOperation("update-group")
	s.publish(ctx, events.TeamEvent{
		Type:   types.GroupUpdatedEvent,
		TeamID: teamID,
		Group:  &updated,
	})
	return updated, nil
}

// RemoveGroup removes a group and unassigns its members. Members are never
// deleted by a group removal.
func (s *Service) RemoveGroup(
	ctx context.Context,
	teamID types.ID,
	token string,
	groupID types.ID,
) error {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return err
	}

	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		found := false
		groups := make([]types.Group, 0, len(info.Groups))
		for _, g := range info.Groups {
			if g.ID == groupID {
				found = true
				continue
			}
			groups = append(groups, g)
		}
		if !found {
			return errors.NotFound(fmt.Sprintf("group %s", groupID))
		}
		info.Groups = groups

		for i, m := range info.Members {
			if m.GroupID == groupID {
				info.Members[i].GroupID = ""
			}
		}
		return nil
	}); err != nil {
		return err
	}

	s.countOperation("remove-group")
	s.publish(ctx, events.TeamEvent{
		Type:    types.GroupRemovedEvent,
		TeamID:  teamID,
		GroupID: groupID,
	})
	return nil
}

// ReorderGroups replaces the group order and reassigns each group's Order
// to its position. Same completeness contract as ReorderMembers.
func (s *Service) ReorderGroups(
	ctx context.Context,
	teamID types.ID,
	token string,
	order []types.ID,
) error {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return err
	}

	var complete []types.ID
	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		byID := make(map[types.ID]types.Group, len(info.Groups))
		for _, g := range info.Groups {
			byID[g.ID] = g
		}

		reordered := make([]types.Group, 0, len(info.Groups))
		seen := make(map[types.ID]bool, len(order))
		for _, id := range order {
			if g, ok := byID[id]; ok && !seen[id] {
				g.Order = len(reordered)
				reordered = append(reordered, g)
				seen[id] = true
			}
		}
		for _, g := range info.Groups {
			if !seen[g.ID] {
				g.Order = len(reordered)
				reordered = append(reordered, g)
			}
		}

		info.Groups = reordered
		complete = make([]types.ID, len(reordered))
		for i, g := range reordered {
			complete[i] = g.ID
		}
		return nil
	}); err != nil {
		return err
	}

	s.countOperation("reorder-groups")
	s.publish(ctx, events.TeamEvent{
		Type:   types.GroupsReorderedEvent,
		TeamID: teamID,
		Order:  complete,
	})
	return nil
}

// UpdateTeamName renames the team.
func (s *Service) UpdateTeamName(
	ctx context.Context,
	teamID types.ID,
	token string,
	fields types.TeamNameFields,
) error {
	if _, err := s.verifyAdmin(token, teamID); err != nil {
		return err
	}
	if err := fields.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	if _, err := s.be.DB.UpdateTeam(ctx, teamID, func(info *teamdb.TeamInfo) error {
		info.Name = fields.Name
		return nil
	}); err != nil {
		return err
	}

	s.countOperation("update-team-name")
	s.publish(ctx, events.TeamEvent{
		Type:   types.TeamNameUpdatedEvent,
		TeamID: teamID,
		Name:   fields.Name,
	})
	return nil
}

// verify checks the token and that it was issued for the given team.
func (s *Service) verify(token string, teamID types.ID) (*auth.TeamClaims, error) {
	if token == "" {
		return nil, errors.Unauthenticated("missing token")
	}

	claims, err := s.be.TokenManager.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.TeamID != teamID.String() {
		return nil, errors.PermissionDenied("token issued for another team")
	}
	return claims, nil
}

// verifyAdmin checks the token and that it grants admin rights on the team.
func (s *Service) verifyAdmin(token string, teamID types.ID) (*auth.TeamClaims, error) {
	claims, err := s.verify(token, teamID)
	if err != nil {
		return nil, err
	}
	if types.Role(claims.Role) != types.RoleAdmin {
		return nil, errors.PermissionDenied("admin access required")
	}
	return claims, nil
}

func (s *Service) publish(ctx context.Context, event events.TeamEvent) {
	s.be.PubSub.Publish(ctx, event)
}

func (s *Service) countOperation(operation string) {
	if s.be.Metrics != nil {
		s.be.Metrics.AddTeamOperation(operation)
	}
}

func groupExists(info *teamdb.TeamInfo, id types.ID) bool {
	for _, g := range info.Groups {
		if g.ID == id {
			return true
		}
	}
	return false
}
