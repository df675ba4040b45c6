package main

import (
	"log"
	"time"

	"github.com/cinematch/cinematch-server/api/route"
	"github.com/cinematch/cinematch-server/bootstrap"
	"github.com/cinematch/cinematch-server/mongo"
	"github.com/gin-gonic/gin"
)

func main() {
	app := bootstrap.App()
	defer app.CloseDBConnection()

	env := app.Env
	db := app.Mongo.Database(env.DBName)

	mongo.CreateIndexes(db)

	timeout := time.Duration(env.ContextTimeout) * time.Second

	if env.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	route.Setup(env, timeout, db, engine)

	log.Printf("服务启动于 %s", env.ServerAddress)
	if err := engine.Run(env.ServerAddress); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
