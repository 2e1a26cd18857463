package resource

import "video-ingest-service/pkg/manager"

func init() {
	manager.RegisterResourcePlugin(&MySqlResourcePlugin{})
	manager.RegisterResourcePlugin(&RedisResourcePlugin{})
	manager.RegisterResourcePlugin(&KafkaResourcePlugin{})
}
