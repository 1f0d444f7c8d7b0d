package feast

import (
	"strconv"
	"strings"
	"time"
)

// NewClient 统一的客户端创建函数。
//
// 参数：
//   - endpoint: 服务端点，例如 "localhost:6565" 或 "grpc://localhost:6565"
//   - project: 项目名称
//   - opts: 配置选项
//
// 示例：
//
//	client, err := feast.NewClient("localhost:6565", "shopsense")
func NewClient(endpoint, project string, opts ...ClientOption) (Client, error) {
	host, port := parseEndpoint(endpoint)
	return NewGrpcClient(host, port, project, opts...)
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}

// parseEndpoint 解析端点地址，返回 host 和 port
func parseEndpoint(endpoint string) (string, int) {
	endpoint = strings.TrimPrefix(endpoint, "grpc://")

	parts := strings.Split(endpoint, ":")
	if len(parts) == 2 {
		port, err := strconv.Atoi(parts[1])
		if err == nil {
			return parts[0], port
		}
	}

	// 没有端口时返回默认值
	return endpoint, 0
}
