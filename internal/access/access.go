// Package access holds the single authorization decision applied to trips
// and everything scoped to them. Budgets, itineraries and packing lists never
// carry their own permissions; callers resolve the owning trip first and ask
// this package, every time.
package access

// Op classifies what the requester is trying to do.
type Op string

const (
	OpRead                Op = "read"
	OpWriteSubResource    Op = "write-sub-resource"
	OpWriteTrip           Op = "write-trip"
	OpDeleteTrip          Op = "delete-trip"
	OpManageCollaborators Op = "manage-collaborators"
)

// Collaborator is the identifier+role pair stored on a trip. The role is
// carried for the policy signature but not consulted: every collaborator gets
// read and sub-resource write, and nothing more.
type Collaborator struct {
	UserID string
	Role   string
}

// Decide reports whether userID may perform op against a trip owned by
// ownerID with the given collaborator list. Pure and side-effect free; the
// caller is responsible for re-fetching the trip before every call, since
// collaborator lists change between requests.
func Decide(ownerID string, collaborators []Collaborator, userID string, op Op) bool {
	if userID == "" {
		return false
	}

	if userID == ownerID {
		return true
	}

	switch op {
	case OpRead, OpWriteSubResource:
		for _, c := range collaborators {
			if c.UserID == userID {
				return true
			}
		}
		return false
	default:
		// trip-level writes, deletion and collaborator management are
		// owner-only
		return false
	}
}

// IsCollaborator reports membership regardless of operation.
func IsCollaborator(collaborators []Collaborator, userID string) bool {
	for _, c := range collaborators {
		if c.UserID == userID {
			return true
		}
	}
	return false
}
