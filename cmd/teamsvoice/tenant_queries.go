// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

// tenantQuery names one tenant-wide configuration query of the full backup.
// Name doubles as the archive entry stem; Resource is the API path under
// the versioned root.
type tenantQuery struct {
	Name     string
	Resource string
}

// tenantQueries is the full-backup catalogue beyond the six Enterprise
// Voice collections. These entries are backup-only: restore has no
// counterpart for them, they exist so a tenant's policy surface can be
// inspected or diffed after the fact.
var tenantQueries = []tenantQuery{
	{"AudioConferencingPolicies", "audioconferencingpolicies"},
	{"AutoAttendants", "autoattendants"},
	{"CallHoldPolicies", "callholdpolicies"},
	{"CallParkPolicies", "callparkpolicies"},
	{"CallQueues", "callqueues"},
	{"CallerIdPolicies", "callinglineidentities"},
	{"CallingPolicies", "callingpolicies"},
	{"ChannelPolicies", "channelpolicies"},
	{"ComplianceRecordingPolicies", "compliancerecordingpolicies"},
	{"EmergencyCallRoutingPolicies", "emergencycallroutingpolicies"},
	{"EmergencyCallingPolicies", "emergencycallingpolicies"},
	{"FederationConfiguration", "federationconfiguration"},
	{"MeetingBroadcastPolicies", "meetingbroadcastpolicies"},
	{"MeetingPolicies", "meetingpolicies"},
	{"MessagingPolicies", "messagingpolicies"},
	{"MobilityPolicies", "mobilitypolicies"},
	{"NetworkRegions", "networkregions"},
	{"NetworkSites", "networksites"},
	{"NetworkSubnets", "networksubnets"},
	{"ResourceAccounts", "resourceaccounts"},
	{"Schedules", "schedules"},
	{"TeamsAppPermissionPolicies", "teamsapppermissionpolicies"},
	{"TeamsAppSetupPolicies", "teamsappsetuppolicies"},
	{"UpgradePolicies", "upgradepolicies"},
	{"Users", "users"},
	{"VoicemailPolicies", "voicemailpolicies"},
}
