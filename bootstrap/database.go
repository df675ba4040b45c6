package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/cinematch/cinematch-server/mongo"
)

func NewMongoDatabase(env *Env) mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(env.DBUri)
	if err != nil {
		log.Fatalf("MongoDB客户端创建失败: %v", err)
	}

	if err := client.Connect(ctx); err != nil {
		log.Fatalf("MongoDB连接失败: %v", err)
	}

	if err := client.Ping(ctx); err != nil {
		log.Fatalf("MongoDB心跳失败: %v", err)
	}

	return client
}

func CloseMongoDBConnection(client mongo.Client) {
	if client == nil {
		return
	}

	if err := client.Disconnect(context.Background()); err != nil {
		log.Printf("MongoDB断开连接失败: %v", err)
		return
	}

	log.Println("MongoDB连接已关闭")
}
