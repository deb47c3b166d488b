package error

const (
	SUCCESS = 0 // 200 OK

	// 40000 ~ 40099: 請求內容錯誤 (400)
	BAD_REQUEST_BODY   = 40000 // 400 - CLI 參數或請求內容驗證失敗
	BAD_REQUEST_PARAMS = 40001 // 400 - 路徑參數 userId 驗證失敗

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403)
	UNAUTHORIZED = 40100
	FORBIDDEN    = 40301

	// 40400 ~ 40499: 資源錯誤 (404)
	NOT_FOUND = 40400 // 查無 userId 或路由

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤，含樹結構異常
	SERVICE_UNAVAILABLE = 50002 // 503 - 名冊來源皆不可用，無法建樹

	// 50400 ~ 50499: 逾時 (504)
	GATEWAY_TIMEOUT = 50400 // 504 - 建樹逾時
)
