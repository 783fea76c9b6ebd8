package roles

import pb "github.com/ory/keto/proto/ory/keto/relation_tuples/v1alpha2"

type tupleBuilder []*pb.RelationTupleDelta

func newTupleBuilder() tupleBuilder {
	return tupleBuilder{}
}

func (t *tupleBuilder) appendInsert(namespace, object, relation, subjectID string) {
	*t = append(*t, &pb.RelationTupleDelta{
		Action: pb.RelationTupleDelta_ACTION_INSERT,
		RelationTuple: &pb.RelationTuple{
			Namespace: namespace,
			Object:    object,
			Relation:  relation,
			Subject: &pb.Subject{
				Ref: &pb.Subject_Id{
					Id: subjectID,
				},
			},
		},
	})
}

func (t *tupleBuilder) appendDelete(namespace, object, relation, subjectID string) {
	*t = append(*t, &pb.RelationTupleDelta{
		Action: pb.RelationTupleDelta_ACTION_DELETE,
		RelationTuple: &pb.RelationTuple{
			Namespace: namespace,
			Object:    object,
			Relation:  relation,
			Subject: &pb.Subject{
				Ref: &pb.Subject_Id{
					Id: subjectID,
				},
			},
		},
	})
}
