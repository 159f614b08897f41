// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// DefaultConfig 默认配置，不指定配置文件时使用
var DefaultConfig = `
title="local"
fixTime=false

[log]
# 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
loglevel = "info"
logConsoleLevel = "info"
# 日志文件名，可带目录，所有生成的日志文件都放到此目录下
logFile = "logs/mines.log"
maxFileSize = 300
maxBackups = 100
maxAge = 28
localTime = true
compress = true
callerFile = false
callerFunction = false

[store]
# memdb, goleveldb, gobadgerdb
driver="goleveldb"
dbPath="datadir"
dbCache=64

[rpc]
jrpcBindAddr="localhost:8801"
whitelist=["127.0.0.1"]
corsOrigins=["*"]
rateLimit=20
rateBurst=40

[metrics]
enableMetrics=false
duration=60

[exec]
[[exec.genesis]]
addr="14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
amount=100000000000000

[exec.sub.mines]
boardSize=25
maxMines=24
expirySeconds=600
hashType="sha256"
minAmount=1
maxAmount=10000000000000
`
