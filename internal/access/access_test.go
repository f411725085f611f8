package access_test

import (
	"testing"

	"github.com/traveltrack/traveltrack/internal/access"
)

func TestDecide(t *testing.T) {
	owner := "user-owner"
	viewer := access.Collaborator{UserID: "user-viewer", Role: "Viewer"}
	editor := access.Collaborator{UserID: "user-editor", Role: "Editor"}
	admin := access.Collaborator{UserID: "user-admin", Role: "Admin"}
	collabs := []access.Collaborator{viewer, editor, admin}

	tests := []struct {
		name string
		user string
		op   access.Op
		want bool
	}{
		{"owner reads", owner, access.OpRead, true},
		{"owner writes sub-resource", owner, access.OpWriteSubResource, true},
		{"owner writes trip", owner, access.OpWriteTrip, true},
		{"owner deletes trip", owner, access.OpDeleteTrip, true},
		{"owner manages collaborators", owner, access.OpManageCollaborators, true},

		{"viewer reads", viewer.UserID, access.OpRead, true},
		{"editor reads", editor.UserID, access.OpRead, true},
		{"admin reads", admin.UserID, access.OpRead, true},

		// role value never changes the decision
		{"viewer writes sub-resource", viewer.UserID, access.OpWriteSubResource, true},
		{"editor writes sub-resource", editor.UserID, access.OpWriteSubResource, true},
		{"admin writes sub-resource", admin.UserID, access.OpWriteSubResource, true},

		{"viewer writes trip", viewer.UserID, access.OpWriteTrip, false},
		{"admin writes trip", admin.UserID, access.OpWriteTrip, false},
		{"editor deletes trip", editor.UserID, access.OpDeleteTrip, false},
		{"admin manages collaborators", admin.UserID, access.OpManageCollaborators, false},

		{"stranger reads", "user-stranger", access.OpRead, false},
		{"stranger writes sub-resource", "user-stranger", access.OpWriteSubResource, false},
		{"empty user id", "", access.OpRead, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := access.Decide(owner, collabs, tc.user, tc.op)

			if got != tc.want {
				t.Fatalf("Decide(%q, %q) = %v, want %v", tc.user, tc.op, got, tc.want)
			}
		})
	}
}

func TestDecideNoCollaborators(t *testing.T) {
	if access.Decide("owner", nil, "someone", access.OpRead) {
		t.Fatal("non-owner allowed on trip with no collaborators")
	}

	if !access.Decide("owner", nil, "owner", access.OpDeleteTrip) {
		t.Fatal("owner denied on trip with no collaborators")
	}
}

func TestIsCollaborator(t *testing.T) {
	collabs := []access.Collaborator{{UserID: "u1", Role: "Viewer"}}

	if !access.IsCollaborator(collabs, "u1") {
		t.Fatal("expected u1 to be a collaborator")
	}

	if access.IsCollaborator(collabs, "u2") {
		t.Fatal("did not expect u2 to be a collaborator")
	}
}
