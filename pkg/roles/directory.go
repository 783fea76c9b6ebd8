package roles

import "context"

// memberRelation links a user subject to a role object.
const memberRelation = "member"

// Directory resolves and mutates role membership within one Keto namespace.
// Role names are plain strings; precedence decides which role wins when a
// user somehow holds several.
type Directory struct {
	client     *Client
	namespace  string
	precedence []string
}

func NewDirectory(client *Client, namespace string, precedence []string) *Directory {
	return &Directory{
		client:     client,
		namespace:  namespace,
		precedence: precedence,
	}
}

func (d *Directory) HasRole(ctx context.Context, userID, role string) (bool, error) {
	return d.client.check(ctx, d.namespace, role, memberRelation, userID)
}

// GetUserRole returns the first role in precedence order the user holds, or
// an empty string when they hold none.
func (d *Directory) GetUserRole(ctx context.Context, userID string) (string, error) {
	for _, role := range d.precedence {
		ok, err := d.client.check(ctx, d.namespace, role, memberRelation, userID)
		if err != nil {
			return "", err
		}
		if ok {
			return role, nil
		}
	}
	return "", nil
}

func (d *Directory) ListUsersWithRole(ctx context.Context, role string) ([]string, error) {
	return d.client.listSubjectIDs(ctx, d.namespace, role, memberRelation)
}

func (d *Directory) AssignRole(ctx context.Context, userID, role string) error {
	ok, err := d.HasRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	tuples := newTupleBuilder()
	tuples.appendInsert(d.namespace, role, memberRelation, userID)
	return d.client.writeTuples(ctx, tuples)
}

func (d *Directory) RemoveRole(ctx context.Context, userID, role string) error {
	tuples := newTupleBuilder()
	tuples.appendDelete(d.namespace, role, memberRelation, userID)
	return d.client.writeTuples(ctx, tuples)
}
