package view

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/coordinator"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/gate"
	"gymdesk/console/internal/session"
	"gymdesk/console/internal/state"

	"go.uber.org/zap"
)

// MembersView is the manager's member administration view: listing with
// joined trainer names, add/edit/delete, and the assign-trainer modal.
type MembersView struct {
	gate     *gate.Gate
	sessions *session.Store
	api      *client.Client
	out      io.Writer
	logger   *zap.Logger

	members *state.Collection[domain.Member]
	assign  *coordinator.AssignTrainerFlow
}

func NewMembersView(sessions *session.Store, api *client.Client, out io.Writer, logger *zap.Logger) *MembersView {
	members := state.NewCollection(func(m domain.Member) string { return m.ID })
	sessions.OnClear(members.Purge)
	return &MembersView{
		gate:     gate.New(domain.RoleManager, logger),
		sessions: sessions,
		api:      api,
		out:      out,
		logger:   logger,
		members:  members,
		assign:   coordinator.NewAssignTrainerFlow(api, members, logger),
	}
}

// Mount gates the view, then loads and renders the member listing.
func (v *MembersView) Mount(ctx context.Context) error {
	if err := mount(v.gate, v.sessions, v.out); err != nil {
		return err
	}
	if err := v.Refresh(ctx); err != nil {
		fmt.Fprintln(v.out, "Failed to fetch members")
		return err
	}
	v.Render()
	return nil
}

// Refresh re-lists the members collection.
func (v *MembersView) Refresh(ctx context.Context) error {
	return v.members.Refresh(ctx, v.api.ListMembers)
}

// Add creates a member and refetches the listing.
func (v *MembersView) Add(ctx context.Context, payload domain.MemberCreate) error {
	return v.members.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.CreateMember(ctx, payload)
		return err
	}, v.api.ListMembers)
}

// Edit updates a member's profile fields and refetches the listing.
// The payload type carries no password, matching the edit form.
func (v *MembersView) Edit(ctx context.Context, id string, payload domain.MemberUpdate) error {
	return v.members.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.UpdateMember(ctx, id, payload)
		return err
	}, v.api.ListMembers)
}

// Remove deletes a member and refetches the listing.
func (v *MembersView) Remove(ctx context.Context, id string) error {
	return v.members.Mutate(ctx, func(ctx context.Context) error {
		return v.api.DeleteMember(ctx, id)
	}, v.api.ListMembers)
}

// AssignFlow exposes the assign-trainer modal state machine.
func (v *MembersView) AssignFlow() *coordinator.AssignTrainerFlow { return v.assign }

// Members returns the cached listing.
func (v *MembersView) Members() []domain.Member { return v.members.Items() }

// Render writes the member table.
func (v *MembersView) Render() {
	items := v.members.Items()
	if len(items) == 0 {
		fmt.Fprintln(v.out, "No members found")
		return
	}
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tAGE\tMEMBERSHIP\tTRAINER")
	for _, m := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", m.Name, m.Email, m.Age, m.MembershipType, m.TrainerName())
	}
	tw.Flush()
}
