package repository

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const defaultVectorDimension = 512

// pointNamespace makes card point IDs deterministic so re-mirroring a
// library overwrites instead of duplicating.
var pointNamespace = uuid.MustParse("7a1c9f5e-0d2b-4c83-9b1a-3e5f7d9c1b2a")

// QdrantConnectionConfig holds configuration for Qdrant connection
type QdrantConnectionConfig struct {
	Host            string
	Port            int
	Collection      string
	APIKey          string // Qdrant Cloud API Key (enables TLS automatically)
	UseTLS          bool   // Explicitly enable TLS without API Key
	VectorDimension int
}

// apiKeyInterceptor creates a unary interceptor that adds API key to metadata
func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// CardVectorRepository mirrors a card library's reference vectors into a
// Qdrant collection so large libraries can be prefiltered with ANN
// search before the exact in-process scoring pass.
type CardVectorRepository struct {
	conn            *grpc.ClientConn
	pointsClient    pb.PointsClient
	collectClient   pb.CollectionsClient
	collectionName  string
	vectorDimension int
}

// NewCardVectorRepository creates a new CardVectorRepository.
// Supports both local Qdrant (insecure) and Qdrant Cloud (TLS + API Key).
func NewCardVectorRepository(cfg *QdrantConnectionConfig) (*CardVectorRepository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	vectorDimension := cfg.VectorDimension
	if vectorDimension <= 0 {
		vectorDimension = defaultVectorDimension
	}

	// Build gRPC dial options
	var opts []grpc.DialOption

	// TLS is enabled if: APIKey is set OR UseTLS is explicitly true
	useTLS := cfg.UseTLS || cfg.APIKey != ""

	if useTLS {
		tlsConfig := &tls.Config{
			MinVersion: tls.VersionTLS13,
		}
		creds := credentials.NewTLS(tlsConfig)
		opts = append(opts, grpc.WithTransportCredentials(creds))

		if cfg.APIKey != "" {
			opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
		}
	} else {
		// Local mode: no TLS, no authentication
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	return &CardVectorRepository{
		conn:            conn,
		pointsClient:    pb.NewPointsClient(conn),
		collectClient:   pb.NewCollectionsClient(conn),
		collectionName:  cfg.Collection,
		vectorDimension: vectorDimension,
	}, nil
}

// Close closes the gRPC connection
func (r *CardVectorRepository) Close() error {
	return r.conn.Close()
}

// EnsureCollection creates the collection if it doesn't exist
func (r *CardVectorRepository) EnsureCollection(ctx context.Context) error {
	info, err := r.collectClient.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collectionName,
	})
	if err == nil {
		if size, ok := collectionVectorSize(info.GetResult()); ok {
			if size != uint64(r.vectorDimension) {
				return fmt.Errorf("collection %s has vector size %d, expected %d", r.collectionName, size, r.vectorDimension)
			}
		}
		return nil // Collection exists
	}

	_, err = r.collectClient.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collectionName,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(r.vectorDimension),
					Distance: pb.Distance_Cosine,
				},
			},
		},
		HnswConfig: &pb.HnswConfigDiff{
			M:                 optionalUint64(16),
			EfConstruct:       optionalUint64(128),
			FullScanThreshold: optionalUint64(10000),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

func optionalUint64(v uint64) *uint64 {
	return &v
}

func collectionVectorSize(info *pb.CollectionInfo) (uint64, bool) {
	if info == nil {
		return 0, false
	}

	config := info.GetConfig()
	if config == nil {
		return 0, false
	}

	params := config.GetParams()
	if params == nil {
		return 0, false
	}

	vectors := params.GetVectorsConfig()
	if vectors == nil {
		return 0, false
	}

	if single := vectors.GetParams(); single != nil {
		if size := single.GetSize(); size > 0 {
			return size, true
		}
	}

	return 0, false
}

// CardPayload is the payload stored with each reference vector.
type CardPayload struct {
	CardID        string `json:"card_id"`
	CardName      string `json:"card_name"`
	CanonicalName string `json:"canonical_name"`
	Deck          string `json:"deck"`
	Kind          string `json:"kind"`
}

// PointID derives the deterministic point UUID for a reference vector.
func PointID(deckStyle, cardID, kind string) string {
	return uuid.NewSHA1(pointNamespace, []byte(deckStyle+"/"+cardID+"/"+kind)).String()
}

// Upsert inserts or updates a reference vector with its payload.
func (r *CardVectorRepository) Upsert(ctx context.Context, vector []float32, payload *CardPayload) error {
	points := []*pb.PointStruct{
		{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{
					Uuid: PointID(payload.Deck, payload.CardID, payload.Kind),
				},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{
						Data: vector,
					},
				},
			},
			Payload: map[string]*pb.Value{
				"card_id":        {Kind: &pb.Value_StringValue{StringValue: payload.CardID}},
				"card_name":      {Kind: &pb.Value_StringValue{StringValue: payload.CardName}},
				"canonical_name": {Kind: &pb.Value_StringValue{StringValue: payload.CanonicalName}},
				"deck":           {Kind: &pb.Value_StringValue{StringValue: payload.Deck}},
				"kind":           {Kind: &pb.Value_StringValue{StringValue: payload.Kind}},
			},
		},
	}

	_, err := r.pointsClient.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// CandidateResult is one ANN hit from the card collection.
type CandidateResult struct {
	CardID string
	Score  float32
}

// SearchCandidates performs an ANN search restricted to one deck and
// returns the closest cards. Callers re-score the returned candidates
// exactly, so this only needs recall, not precision.
func (r *CardVectorRepository) SearchCandidates(ctx context.Context, deckStyle string, vector []float32, limit int) ([]CandidateResult, error) {
	resp, err := r.pointsClient.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collectionName,
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
		Filter: &pb.Filter{
			Must: []*pb.Condition{
				{
					ConditionOneOf: &pb.Condition_Field{
						Field: &pb.FieldCondition{
							Key: "deck",
							Match: &pb.Match{
								MatchValue: &pb.Match_Keyword{Keyword: deckStyle},
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}

	results := make([]CandidateResult, 0, len(resp.Result))
	for _, scored := range resp.Result {
		payload := scored.GetPayload()
		if payload == nil {
			continue
		}
		cardID := payload["card_id"].GetStringValue()
		if cardID == "" {
			continue
		}
		results = append(results, CandidateResult{
			CardID: cardID,
			Score:  scored.GetScore(),
		})
	}
	return results, nil
}

// DeleteDeck removes every point mirrored for a deck style.
func (r *CardVectorRepository) DeleteDeck(ctx context.Context, deckStyle string) error {
	_, err := r.pointsClient.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collectionName,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{
					Must: []*pb.Condition{
						{
							ConditionOneOf: &pb.Condition_Field{
								Field: &pb.FieldCondition{
									Key: "deck",
									Match: &pb.Match{
										MatchValue: &pb.Match_Keyword{Keyword: deckStyle},
									},
								},
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete deck points: %w", err)
	}
	return nil
}
