package movie_models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Neighbor 与目标用户品味相近的邻居，Score 恒为正
type Neighbor struct {
	UserID primitive.ObjectID `json:"user_id"`
	Score  float64            `json:"score"`
}
