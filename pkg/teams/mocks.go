// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Fake is an in-memory Admin and TenantAdmin used as the simulated remote
// store in tests. It records every call in order, so tests can assert not
// just outcomes but call counts and sequencing (create vs update, purge
// ordering, usage additivity).
//
// Seed it by filling the exported record slices, inject failures through
// Fail, then inspect Calls afterwards:
//
//	fake := NewFake()
//	fake.DialPlanRecords = []DialPlan{{Identity: "US"}}
//	fake.Fail["CreateVoiceRoute"] = errors.New("rejected")
//	...
//	require.Equal(t, 1, fake.CallCount("UpdateDialPlan"))
type Fake struct {
	mu sync.Mutex

	DialPlanRecords   []DialPlan
	VoiceRouteRecords []VoiceRoute
	PolicyRecords     []VoiceRoutingPolicy
	UsageRecord       PstnUsage
	RuleRecords       []TranslationRule
	GatewayRecords    []PstnGateway
	TenantRecord      Tenant
	QueryResults      map[string]json.RawMessage

	// Calls holds one "<Op> <identity>" entry per call, in order.
	Calls []string

	// Fail injects an error for an op. Keys match either the bare op
	// ("CreateDialPlan") or op plus identity ("CreateDialPlan US").
	Fail map[string]error
}

var (
	_ Admin       = (*Fake)(nil)
	_ TenantAdmin = (*Fake)(nil)
)

// NewFake returns an empty fake with the global usage record in place.
func NewFake() *Fake {
	return &Fake{
		UsageRecord:  PstnUsage{Identity: "Global", Usage: []string{}},
		QueryResults: map[string]json.RawMessage{},
		Fail:         map[string]error{},
	}
}

// CallCount returns how many recorded calls start with op.
func (f *Fake) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

// CallIndex returns the position of the first recorded call starting with
// op, or -1.
func (f *Fake) CallIndex(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.Calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			return i
		}
	}
	return -1
}

// MutatingCalls returns every recorded call that writes remote state.
func (f *Fake) MutatingCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if strings.HasPrefix(c, "Get") || strings.HasPrefix(c, "List") ||
			strings.HasPrefix(c, "Query") || strings.HasPrefix(c, "Tenant") {
			continue
		}
		out = append(out, c)
	}
	return out
}

// note logs a call and returns any injected failure for it.
func (f *Fake) note(op, identity string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := op
	if identity != "" {
		entry = op + " " + identity
	}
	f.Calls = append(f.Calls, entry)
	if err, ok := f.Fail[entry]; ok {
		return err
	}
	if err, ok := f.Fail[op]; ok {
		return err
	}
	return nil
}

func notFound(op, identity string) error {
	return fmt.Errorf("%s %q: %w", op, identity, ErrNotFound)
}

// -----------------------------------------------------------------------------
// Dial plans
// -----------------------------------------------------------------------------

func (f *Fake) DialPlans(ctx context.Context) ([]DialPlan, error) {
	if err := f.note("ListDialPlans", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]DialPlan, len(f.DialPlanRecords))
	copy(out, f.DialPlanRecords)
	return out, nil
}

func (f *Fake) GetDialPlan(ctx context.Context, identity string) (*DialPlan, error) {
	if err := f.note("GetDialPlan", identity); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.DialPlanRecords {
		if f.DialPlanRecords[i].Identity == identity {
			plan := f.DialPlanRecords[i]
			return &plan, nil
		}
	}
	return nil, notFound("get dial plan", identity)
}

func (f *Fake) CreateDialPlan(ctx context.Context, plan DialPlan) error {
	if err := f.note("CreateDialPlan", plan.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	plan.NormalizationRules = nil
	f.DialPlanRecords = append(f.DialPlanRecords, plan)
	return nil
}

func (f *Fake) UpdateDialPlan(ctx context.Context, plan DialPlan) error {
	if err := f.note("UpdateDialPlan", plan.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.DialPlanRecords {
		if f.DialPlanRecords[i].Identity == plan.Identity {
			plan.NormalizationRules = f.DialPlanRecords[i].NormalizationRules
			f.DialPlanRecords[i] = plan
			return nil
		}
	}
	return notFound("update dial plan", plan.Identity)
}

func (f *Fake) DeleteDialPlan(ctx context.Context, identity string) error {
	if err := f.note("DeleteDialPlan", identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.DialPlanRecords {
		if f.DialPlanRecords[i].Identity == identity {
			f.DialPlanRecords = append(f.DialPlanRecords[:i], f.DialPlanRecords[i+1:]...)
			return nil
		}
	}
	return notFound("delete dial plan", identity)
}

func (f *Fake) SetNormalizationRules(ctx context.Context, identity string, rules []NormalizationRule) error {
	if err := f.note("SetNormalizationRules", identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.DialPlanRecords {
		if f.DialPlanRecords[i].Identity == identity {
			blobs := make([]string, len(rules))
			for j, r := range rules {
				blobs[j] = r.String()
			}
			f.DialPlanRecords[i].NormalizationRules = blobs
			return nil
		}
	}
	return notFound("set normalization rules", identity)
}

// -----------------------------------------------------------------------------
// Voice routes
// -----------------------------------------------------------------------------

func (f *Fake) VoiceRoutes(ctx context.Context) ([]VoiceRoute, error) {
	if err := f.note("ListVoiceRoutes", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]VoiceRoute, len(f.VoiceRouteRecords))
	copy(out, f.VoiceRouteRecords)
	return out, nil
}

func (f *Fake) GetVoiceRoute(ctx context.Context, identity string) (*VoiceRoute, error) {
	if err := f.note("GetVoiceRoute", identity); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.VoiceRouteRecords {
		if f.VoiceRouteRecords[i].Identity == identity {
			route := f.VoiceRouteRecords[i]
			return &route, nil
		}
	}
	return nil, notFound("get voice route", identity)
}

func (f *Fake) CreateVoiceRoute(ctx context.Context, route VoiceRoute) error {
	if err := f.note("CreateVoiceRoute", route.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VoiceRouteRecords = append(f.VoiceRouteRecords, route)
	return nil
}

func (f *Fake) UpdateVoiceRoute(ctx context.Context, route VoiceRoute) error {
	if err := f.note("UpdateVoiceRoute", route.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.VoiceRouteRecords {
		if f.VoiceRouteRecords[i].Identity == route.Identity {
			f.VoiceRouteRecords[i] = route
			return nil
		}
	}
	return notFound("update voice route", route.Identity)
}

func (f *Fake) DeleteVoiceRoute(ctx context.Context, identity string) error {
	if err := f.note("DeleteVoiceRoute", identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.VoiceRouteRecords {
		if f.VoiceRouteRecords[i].Identity == identity {
			f.VoiceRouteRecords = append(f.VoiceRouteRecords[:i], f.VoiceRouteRecords[i+1:]...)
			return nil
		}
	}
	return notFound("delete voice route", identity)
}

// -----------------------------------------------------------------------------
// Voice routing policies
// -----------------------------------------------------------------------------

func (f *Fake) VoiceRoutingPolicies(ctx context.Context) ([]VoiceRoutingPolicy, error) {
	if err := f.note("ListVoiceRoutingPolicies", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]VoiceRoutingPolicy, len(f.PolicyRecords))
	copy(out, f.PolicyRecords)
	return out, nil
}

func (f *Fake) GetVoiceRoutingPolicy(ctx context.Context, identity string) (*VoiceRoutingPolicy, error) {
	if err := f.note("GetVoiceRoutingPolicy", identity); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.PolicyRecords {
		if f.PolicyRecords[i].Identity == identity {
			policy := f.PolicyRecords[i]
			return &policy, nil
		}
	}
	return nil, notFound("get voice routing policy", identity)
}

func (f *Fake) CreateVoiceRoutingPolicy(ctx context.Context, policy VoiceRoutingPolicy) error {
	if err := f.note("CreateVoiceRoutingPolicy", policy.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PolicyRecords = append(f.PolicyRecords, policy)
	return nil
}

func (f *Fake) UpdateVoiceRoutingPolicy(ctx context.Context, policy VoiceRoutingPolicy) error {
	if err := f.note("UpdateVoiceRoutingPolicy", policy.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.PolicyRecords {
		if f.PolicyRecords[i].Identity == policy.Identity {
			f.PolicyRecords[i] = policy
			return nil
		}
	}
	return notFound("update voice routing policy", policy.Identity)
}

func (f *Fake) DeleteVoiceRoutingPolicy(ctx context.Context, identity string) error {
	if err := f.note("DeleteVoiceRoutingPolicy", identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.PolicyRecords {
		if f.PolicyRecords[i].Identity == identity {
			f.PolicyRecords = append(f.PolicyRecords[:i], f.PolicyRecords[i+1:]...)
			return nil
		}
	}
	return notFound("delete voice routing policy", identity)
}

// -----------------------------------------------------------------------------
// PSTN usages
// -----------------------------------------------------------------------------

func (f *Fake) PstnUsages(ctx context.Context) (*PstnUsage, error) {
	if err := f.note("GetPstnUsages", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	usage := PstnUsage{Identity: f.UsageRecord.Identity}
	usage.Usage = append(usage.Usage, f.UsageRecord.Usage...)
	return &usage, nil
}

func (f *Fake) AddPstnUsage(ctx context.Context, name string) error {
	if err := f.note("AddPstnUsage", name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UsageRecord.Usage = append(f.UsageRecord.Usage, name)
	return nil
}

func (f *Fake) SetPstnUsages(ctx context.Context, names []string) error {
	if err := f.note("SetPstnUsages", ""); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UsageRecord.Usage = append([]string{}, names...)
	return nil
}

// -----------------------------------------------------------------------------
// Translation rules
// -----------------------------------------------------------------------------

func (f *Fake) TranslationRules(ctx context.Context) ([]TranslationRule, error) {
	if err := f.note("ListTranslationRules", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]TranslationRule, len(f.RuleRecords))
	copy(out, f.RuleRecords)
	return out, nil
}

func (f *Fake) GetTranslationRule(ctx context.Context, identity string) (*TranslationRule, error) {
	if err := f.note("GetTranslationRule", identity); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.RuleRecords {
		if f.RuleRecords[i].Identity == identity {
			rule := f.RuleRecords[i]
			return &rule, nil
		}
	}
	return nil, notFound("get translation rule", identity)
}

func (f *Fake) CreateTranslationRule(ctx context.Context, rule TranslationRule) error {
	if err := f.note("CreateTranslationRule", rule.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RuleRecords = append(f.RuleRecords, rule)
	return nil
}

func (f *Fake) UpdateTranslationRule(ctx context.Context, rule TranslationRule) error {
	if err := f.note("UpdateTranslationRule", rule.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.RuleRecords {
		if f.RuleRecords[i].Identity == rule.Identity {
			f.RuleRecords[i] = rule
			return nil
		}
	}
	return notFound("update translation rule", rule.Identity)
}

func (f *Fake) DeleteTranslationRule(ctx context.Context, identity string) error {
	if err := f.note("DeleteTranslationRule", identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.RuleRecords {
		if f.RuleRecords[i].Identity == identity {
			f.RuleRecords = append(f.RuleRecords[:i], f.RuleRecords[i+1:]...)
			return nil
		}
	}
	return notFound("delete translation rule", identity)
}

// -----------------------------------------------------------------------------
// PSTN gateways
// -----------------------------------------------------------------------------

func (f *Fake) PstnGateways(ctx context.Context) ([]PstnGateway, error) {
	if err := f.note("ListPstnGateways", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]PstnGateway, len(f.GatewayRecords))
	copy(out, f.GatewayRecords)
	return out, nil
}

func (f *Fake) GetPstnGateway(ctx context.Context, identity string) (*PstnGateway, error) {
	if err := f.note("GetPstnGateway", identity); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.GatewayRecords {
		if f.GatewayRecords[i].Identity == identity {
			gw := f.GatewayRecords[i]
			return &gw, nil
		}
	}
	return nil, notFound("get pstn gateway", identity)
}

func (f *Fake) UpdatePstnGateway(ctx context.Context, gw PstnGateway) error {
	if err := f.note("UpdatePstnGateway", gw.Identity); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.GatewayRecords {
		if f.GatewayRecords[i].Identity == gw.Identity {
			f.GatewayRecords[i] = gw
			return nil
		}
	}
	return notFound("update pstn gateway", gw.Identity)
}

// -----------------------------------------------------------------------------
// Tenant
// -----------------------------------------------------------------------------

func (f *Fake) Tenant(ctx context.Context) (*Tenant, error) {
	if err := f.note("Tenant", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.TenantRecord
	return &t, nil
}

func (f *Fake) Query(ctx context.Context, resource string) (json.RawMessage, error) {
	if err := f.note("Query", resource); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.QueryResults[resource]
	if !ok {
		return nil, fmt.Errorf("query %s: %w", resource, ErrNotFound)
	}
	return raw, nil
}
