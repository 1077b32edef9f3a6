// Package model defines the persistent entities of the mission catalog as
// they are stored in the database. The structs here carry no JSON tags;
// handlers define separate response types with the tags they need.
package model

import "time"

// Rocket represents a named launch vehicle stored in the `rockets` table.
// The name is unique case-insensitively: two rockets may never differ only
// by letter case. A rocket is referenced by zero or more missions but does
// not own their lifecycle.
//
// Fields:
//
//	ID       – primary key identifier of the rocket.
//	Name     – unique vehicle name (max 100 chars).
//	IsActive – whether the vehicle is still in service.
type Rocket struct {
	ID       uint64 // rockets.id
	Name     string // rockets.name
	IsActive bool   // rockets.is_active
}

// Mission represents one recorded launch attempt stored in the `missions`
// table. LaunchDateTime is always a UTC instant. Price is optional (many
// historical records do not disclose one) and RocketID is nullable: when
// the referenced rocket is deleted the missions survive with the reference
// cleared.
//
// Fields:
//
//	ID             – primary key identifier of the mission.
//	Company        – organisation that ran the launch (max 100 chars).
//	Location       – launch site description (max 200 chars).
//	LaunchDateTime – UTC instant of the launch.
//	MissionName    – name of the mission (max 200 chars, required).
//	MissionStatus  – outcome such as "Success" or "Failure" (max 50 chars).
//	Price          – launch cost in millions of USD, nil when unknown.
//	RocketID       – rocket that flew the mission, nil when unlinked.
type Mission struct {
	ID             uint64     // missions.id
	Company        string     // missions.company
	Location       string     // missions.location
	LaunchDateTime time.Time  // missions.launch_datetime (UTC)
	MissionName    string     // missions.mission_name
	MissionStatus  string     // missions.mission_status
	Price          *float64   // missions.price (nullable DECIMAL(18,2))
	RocketID       *uint64    // missions.rocket_id (nullable FK)
}
