// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package teams

// =============================================================================
// ENTITY TYPE CATALOGUE
// =============================================================================

// EntityType identifies one of the six Enterprise Voice configuration
// collections handled by backup and restore. The set is closed: collections
// are always resolved through this enumeration, never through runtime names.
type EntityType int

const (
	EntityDialPlans EntityType = iota
	EntityVoiceRoutes
	EntityVoiceRoutingPolicies
	EntityPstnUsages
	EntityTranslationRules
	EntityPstnGateways
)

// String returns the canonical collection name. These names are part of the
// archive contract (entry files are named "<name>.txt") and must not change.
func (t EntityType) String() string {
	switch t {
	case EntityDialPlans:
		return "Dialplans"
	case EntityVoiceRoutes:
		return "VoiceRoutes"
	case EntityVoiceRoutingPolicies:
		return "VoiceRoutingPolicies"
	case EntityPstnUsages:
		return "PSTNUsages"
	case EntityTranslationRules:
		return "TranslationRules"
	case EntityPstnGateways:
		return "PSTNGateways"
	default:
		return "Unknown"
	}
}

// EntryName returns the archive entry name for this collection.
func (t EntityType) EntryName() string {
	return t.String() + ".txt"
}

// EntityTypes returns all six collections in backup order.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityDialPlans,
		EntityVoiceRoutes,
		EntityVoiceRoutingPolicies,
		EntityPstnUsages,
		EntityTranslationRules,
		EntityPstnGateways,
	}
}

// =============================================================================
// ENTITY RECORDS
// =============================================================================
//
// Records are flat snapshots of the remote administrative object model. Field
// names and JSON tags mirror the remote attribute names exactly; the tool
// passes them through and defines no schema of its own.

// DialPlan is a tenant dial plan with its ordered normalization rules.
//
// NormalizationRules holds each rule in its serialized blob form
// ("Name=...;Pattern=...;..."), which is how rules appear both in backup
// files and in list responses. ParseNormalizationRule recovers the fields.
type DialPlan struct {
	Identity              string   `json:"Identity" validate:"required"`
	Description           string   `json:"Description,omitempty"`
	ExternalAccessPrefix  string   `json:"ExternalAccessPrefix,omitempty"`
	OptimizeDeviceDialing bool     `json:"OptimizeDeviceDialing"`
	NormalizationRules    []string `json:"NormalizationRules"`
}

// VoiceRoute maps a number pattern to PSTN gateways via usage records.
// Lower Priority wins when multiple routes match.
type VoiceRoute struct {
	Identity              string   `json:"Identity" validate:"required"`
	Description           string   `json:"Description,omitempty"`
	NumberPattern         string   `json:"NumberPattern"`
	Priority              int      `json:"Priority"`
	OnlinePstnUsages      []string `json:"OnlinePstnUsages"`
	OnlinePstnGatewayList []string `json:"OnlinePstnGatewayList"`
}

// VoiceRoutingPolicy links users to voice routes through PSTN usage names.
type VoiceRoutingPolicy struct {
	Identity         string   `json:"Identity" validate:"required"`
	Description      string   `json:"Description,omitempty"`
	OnlinePstnUsages []string `json:"OnlinePstnUsages"`
}

// PstnUsage is the single global record holding the ordered usage-name list.
// The remote service keeps exactly one of these (Identity "Global").
type PstnUsage struct {
	Identity string   `json:"Identity"`
	Usage    []string `json:"Usage" validate:"min=1"`
}

// TranslationRule is a number translation applied at a gateway boundary.
type TranslationRule struct {
	Identity    string `json:"Identity" validate:"required"`
	Description string `json:"Description,omitempty"`
	Pattern     string `json:"Pattern"`
	Translation string `json:"Translation"`
}

// PstnGateway carries the four translation-rule attachments of a PSTN trunk.
// Gateways are never created or deleted by this tool; only these four rule
// lists are written back.
//
// OutbundTeamsNumberTranslationRules reproduces the attribute name as the
// remote API spells it, missing "o" included. Renaming it breaks the wire
// contract.
type PstnGateway struct {
	Identity                           string   `json:"Identity" validate:"required"`
	OutboundPstnNumberTranslationRules []string `json:"OutboundPstnNumberTranslationRules"`
	OutbundTeamsNumberTranslationRules []string `json:"OutbundTeamsNumberTranslationRules"`
	InboundPstnNumberTranslationRules  []string `json:"InboundPstnNumberTranslationRules"`
	InboundTeamsNumberTranslationRules []string `json:"InboundTeamsNumberTranslationRules"`
}

// RuleLists bundles the four gateway attachments in a fixed order, outbound
// before inbound, PSTN side before Teams side.
func (g PstnGateway) RuleLists() [][]string {
	return [][]string{
		g.OutboundPstnNumberTranslationRules,
		g.OutbundTeamsNumberTranslationRules,
		g.InboundPstnNumberTranslationRules,
		g.InboundTeamsNumberTranslationRules,
	}
}

// Tenant describes the tenant a session is bound to, as reported by the
// remote service. DisplayName feeds the full backup's output filename.
type Tenant struct {
	TenantID    string `json:"TenantId"`
	DisplayName string `json:"DisplayName"`
}
