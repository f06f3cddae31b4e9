// pkg/monitor/monitor.go
package monitor

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ComponentHealth 单个组件的健康快照
type ComponentHealth struct {
	Component   string    `json:"component"`
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Message     string    `json:"message,omitempty"`
}

// Monitor 组件健康注册表，状态恶化时触发告警回调
type Monitor struct {
	components map[string]*ComponentHealth
	mutex      sync.RWMutex
	alertFunc  func(component, status, message string)
}

// NewMonitor 创建健康监控器
func NewMonitor(alertFunc func(component, status, message string)) *Monitor {
	return &Monitor{
		components: make(map[string]*ComponentHealth),
		alertFunc:  alertFunc,
	}
}

// Register 注册待监控组件
func (m *Monitor) Register(component string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.components[component] = &ComponentHealth{
		Component:   component,
		Status:      "unknown",
		LastChecked: time.Now(),
	}
}

// Update 更新组件状态，非healthy的状态变化触发告警
func (m *Monitor) Update(component, status, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	current, exists := m.components[component]
	if !exists {
		current = &ComponentHealth{Component: component}
		m.components[component] = current
	}

	oldStatus := current.Status
	current.Status = status
	current.LastChecked = time.Now()
	current.Message = message

	if oldStatus != status && status != "healthy" && m.alertFunc != nil {
		m.alertFunc(component, status, message)
	}
}

// Status 查询单个组件状态，未注册返回nil
func (m *Monitor) Status(component string) *ComponentHealth {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.components[component]
}

// AllStatus 所有组件状态快照
func (m *Monitor) AllStatus() []*ComponentHealth {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	statuses := make([]*ComponentHealth, 0, len(m.components))
	for _, status := range m.components {
		statuses = append(statuses, status)
	}
	return statuses
}

// ProbeHTTP 探测HTTP端点并更新组件状态
func (m *Monitor) ProbeHTTP(component, url string) {
	resp, err := http.Get(url)
	if err != nil {
		m.Update(component, "unhealthy", fmt.Sprintf("HTTP请求失败: %v", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.Update(component, "degraded", fmt.Sprintf("HTTP状态码非200: %d", resp.StatusCode))
		return
	}

	m.Update(component, "healthy", "")
}

// StartProbing 按固定间隔持续探测端点
func (m *Monitor) StartProbing(component, url string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			m.ProbeHTTP(component, url)
		}
	}()
}
