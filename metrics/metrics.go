// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 统计数据的收集与周期输出
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/33cn/mines/types"
	log15 "github.com/inconshreveable/log15"
	gometrics "github.com/rcrowley/go-metrics"
)

var log = log15.New("module", "metrics")

// DefaultDuration 默认输出间隔(秒)
const DefaultDuration = 60

// Emitter 周期性地把registry中的数据写到日志
type Emitter struct {
	registry gometrics.Registry
	interval time.Duration
	quit     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// StartMetrics 根据配置文件相关参数启动, 未启用时返回nil
func StartMetrics(cfg *types.Metrics, r gometrics.Registry) *Emitter {
	if cfg == nil || !cfg.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return nil
	}
	duration := cfg.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	e := &Emitter{
		registry: r,
		interval: time.Duration(duration) * time.Second,
		quit:     make(chan struct{}),
	}
	e.wg.Add(1)
	go e.loop()
	log.Info("StartMetrics", "duration", duration)
	return e
}

func (e *Emitter) loop() {
	defer e.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.Emit()
		case <-e.quit:
			e.Emit()
			return
		}
	}
}

// Emit 输出一次
func (e *Emitter) Emit() {
	for _, kv := range Snapshot(e.registry) {
		log.Info("metrics", "name", kv.Name, "value", kv.Value)
	}
}

// Close 停止输出
func (e *Emitter) Close() {
	if e == nil {
		return
	}
	e.once.Do(func() {
		close(e.quit)
	})
	e.wg.Wait()
}

// Value 单项统计
type Value struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// TimerValue timer 的摘要
type TimerValue struct {
	Count int64   `json:"count"`
	Min   int64   `json:"min"`
	Max   int64   `json:"max"`
	Mean  float64 `json:"mean"`
	P99   float64 `json:"p99"`
}

// Snapshot 按名字排序的当前值
func Snapshot(r gometrics.Registry) []*Value {
	var values []*Value
	r.Each(func(name string, i interface{}) {
		var v interface{}
		switch metric := i.(type) {
		case gometrics.Counter:
			v = metric.Count()
		case gometrics.Gauge:
			v = metric.Value()
		case gometrics.Meter:
			v = metric.Snapshot().Rate1()
		case gometrics.Timer:
			t := metric.Snapshot()
			v = &TimerValue{Count: t.Count(), Min: t.Min(), Max: t.Max(), Mean: t.Mean(), P99: t.Percentile(0.99)}
		default:
			return
		}
		values = append(values, &Value{Name: name, Value: v})
	})
	sort.Slice(values, func(i, j int) bool { return values[i].Name < values[j].Name })
	return values
}
