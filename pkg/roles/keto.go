// Package roles stores and resolves application role membership in Ory Keto.
// Each assignment is a relation tuple (namespace, role, "member", user id);
// a user is expected to hold one role at a time.
package roles

import (
	"context"
	"fmt"

	pb "github.com/ory/keto/proto/ory/keto/relation_tuples/v1alpha2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client holds the gRPC connections to the Keto APIs.
// It is safe for concurrent use.
type Client struct {
	writeConn *grpc.ClientConn
	readConn  *grpc.ClientConn
	writeSC   pb.WriteServiceClient
	readSC    pb.ReadServiceClient
	checkSC   pb.CheckServiceClient
}

// Config holds the connection addresses for the Keto client.
type Config struct {
	WriteAddr string
	ReadAddr  string
}

// NewClient creates a new Keto client and its associated cleanup function.
func NewClient(cfg Config) (*Client, func(), error) {
	var writeConn, readConn *grpc.ClientConn
	var err error

	if cfg.WriteAddr != "" {
		writeConn, err = grpc.NewClient(cfg.WriteAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to keto write api: %w", err)
		}
	}

	if cfg.ReadAddr != "" {
		readConn, err = grpc.NewClient(cfg.ReadAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			if writeConn != nil {
				writeConn.Close()
			}
			return nil, nil, fmt.Errorf("failed to connect to keto read api: %w", err)
		}
	}

	client := &Client{
		writeConn: writeConn,
		readConn:  readConn,
		writeSC:   pb.NewWriteServiceClient(writeConn),
		readSC:    pb.NewReadServiceClient(readConn),
		checkSC:   pb.NewCheckServiceClient(readConn),
	}

	cleanup := func() {
		if writeConn != nil {
			writeConn.Close()
		}
		if readConn != nil {
			readConn.Close()
		}
	}
	return client, cleanup, nil
}

func (c *Client) check(ctx context.Context, namespace, object, relation, subjectID string) (bool, error) {
	if c.checkSC == nil {
		return false, ErrReadConnectNotInitialed
	}

	resp, err := c.checkSC.Check(ctx, &pb.CheckRequest{
		Tuple: &pb.RelationTuple{
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
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return resp.Allowed, nil
}

func (c *Client) listSubjectIDs(ctx context.Context, namespace, object, relation string) ([]string, error) {
	if c.readSC == nil {
		return nil, ErrReadConnectNotInitialed
	}

	resp, err := c.readSC.ListRelationTuples(ctx, &pb.ListRelationTuplesRequest{
		Query: &pb.ListRelationTuplesRequest_Query{
			Namespace: namespace,
			Object:    object,
			Relation:  relation,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	ids := make([]string, 0, len(resp.RelationTuples))
	for _, rt := range resp.RelationTuples {
		if id := rt.Subject.GetId(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (c *Client) writeTuples(ctx context.Context, tuples tupleBuilder) error {
	if c.writeSC == nil {
		return ErrWriteConnectNotInitialed
	}

	_, err := c.writeSC.TransactRelationTuples(ctx, &pb.TransactRelationTuplesRequest{
		RelationTupleDeltas: tuples,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
