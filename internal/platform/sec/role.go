// Copyright (c) 2026 Atimus. All rights reserved.

package sec

// # Roles

// RoleAdmin is the only privileged role in the system. Admin accounts are
// provisioned out of band (cmd/createadmin) and are read-only to the API.
const RoleAdmin = "admin"
