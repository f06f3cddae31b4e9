package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// envelope API统一返回体
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	log.Println("开始系统验证...")

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	failures := 0

	// 1. 健康检查
	if err := checkStatus(baseURL+"/health", http.StatusOK); err != nil {
		log.Printf("健康检查失败: %v\n", err)
		failures++
	} else {
		log.Println("健康检查通过")
	}

	// 2. 就绪检查（数据库连通性）
	if err := checkStatus(baseURL+"/ready", http.StatusOK); err != nil {
		log.Printf("就绪检查失败: %v\n", err)
		failures++
	} else {
		log.Println("就绪检查通过")
	}

	// 3. 分类列表
	if env, err := getEnvelope(baseURL + "/api/v1/categories"); err != nil {
		log.Printf("分类查询失败: %v\n", err)
		failures++
	} else {
		log.Printf("分类查询通过: %s\n", env.Message)
	}

	// 4. 视频列表分页
	if env, err := getEnvelope(baseURL + "/api/v1/videos?page=1&pageSize=5"); err != nil {
		log.Printf("视频查询失败: %v\n", err)
		failures++
	} else {
		log.Printf("视频查询通过: %s\n", env.Message)
	}

	// 5. 搜索：短查询走联想，长查询走全量
	for _, q := range []string{"ars", "arsenal"} {
		if env, err := getEnvelope(baseURL + "/api/v1/search?q=" + q); err != nil {
			log.Printf("搜索 %q 失败: %v\n", q, err)
			failures++
		} else {
			log.Printf("搜索 %q 通过: %s\n", q, env.Message)
		}
	}

	// 6. 登录：未注册号码应返回引导payload
	msisdn := os.Getenv("TEST_MSISDN")
	if msisdn == "" {
		msisdn = "08031234567"
	}
	body, _ := json.Marshal(map[string]string{"msisdn": msisdn})
	resp, err := client.Post(baseURL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("登录请求失败: %v\n", err)
		failures++
	} else {
		env, err := decodeEnvelope(resp)
		if err != nil {
			log.Printf("登录响应解析失败: %v\n", err)
			failures++
		} else {
			log.Printf("登录通过: %s\n", env.Message)
		}
	}

	// 7. webhook：未识别状态也必须回200
	payload := []byte(fmt.Sprintf(`{"msisdn":%q,"status":"bogus"}`, msisdn))
	resp, err = client.Post(baseURL+"/api/v1/auth/webhook", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("webhook请求失败: %v\n", err)
		failures++
	} else if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		log.Printf("webhook状态码 = %d, 期望200\n", resp.StatusCode)
		failures++
	} else {
		resp.Body.Close()
		log.Println("webhook通过")
	}

	if failures > 0 {
		log.Fatalf("系统验证失败: %d项未通过\n", failures)
	}
	log.Println("系统验证完成")
}

// checkStatus 校验端点返回指定状态码
func checkStatus(url string, want int) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return fmt.Errorf("状态码 = %d, 期望 %d", resp.StatusCode, want)
	}
	return nil
}

// getEnvelope 请求端点并解析统一返回体
func getEnvelope(url string) (*envelope, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(resp)
}

func decodeEnvelope(resp *http.Response) (*envelope, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("解析返回体失败: %w", err)
	}
	if !env.Success {
		return &env, fmt.Errorf("请求未成功: %s", env.Message)
	}
	return &env, nil
}
