// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// StaffRole classifies an operator. Some flows only accept full-timers.
type StaffRole string

const (
	RoleFulltimer StaffRole = "fulltimer"
	RoleParttimer StaffRole = "parttimer"
	RoleIntern    StaffRole = "intern"
)

// Valid reports whether r is one of the known roles.
func (r StaffRole) Valid() bool {
	switch r {
	case RoleFulltimer, RoleParttimer, RoleIntern:
		return true
	}
	return false
}

// StaffName is an operator who can be picked in the modals' name dropdown.
// StaffUID is only exposed through the owner-PIN gated UID listing.
type StaffName struct {
	Name      string    `json:"name"`
	StaffUID  *string   `json:"-"`
	StaffRole StaffRole `json:"staff_role"`
	IsActive  bool      `json:"is_active"`
}

// StaffUIDRow is the shape returned by the staff UID listing route.
type StaffUIDRow struct {
	Name      string    `json:"name"`
	StaffUID  *string   `json:"staff_uid"`
	StaffRole StaffRole `json:"staff_role"`
}
