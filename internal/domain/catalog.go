package domain

// DemoCatalog returns the fixed 20-instrument catalog that every synthesis
// pass runs over. Amounts are in 億円 (hundreds of millions of yen).
func DemoCatalog() []AssetDefinition {
	return []AssetDefinition{
		{RIC: "JP_EQ_LARGE", Name: "日本株式（大型）", Category: CategoryEquity, BaseAmount: 10.8, Volatility: 0.35},
		{RIC: "JP_EQ_MID", Name: "日本株式（中型）", Category: CategoryEquity, BaseAmount: 6.2, Volatility: 0.28},
		{RIC: "US_EQ_TECH", Name: "米国株式（テック）", Category: CategoryEquity, BaseAmount: 9.4, Volatility: 0.45},
		{RIC: "EU_EQ_BANKS", Name: "欧州株式（金融）", Category: CategoryEquity, BaseAmount: 5.3, Volatility: 0.25},
		{RIC: "EM_EQ", Name: "新興国株式", Category: CategoryEquity, BaseAmount: 7.1, Volatility: 0.4},
		{RIC: "US_RATES_CORE", Name: "米国金利（10Y）", Category: CategoryRates, BaseAmount: 8.5, Volatility: 0.22},
		{RIC: "EU_RATES_CORE", Name: "欧州金利", Category: CategoryRates, BaseAmount: 6.7, Volatility: 0.18},
		{RIC: "JP_RATES", Name: "日本金利", Category: CategoryRates, BaseAmount: 4.2, Volatility: 0.12},
		{RIC: "UK_RATES", Name: "英国金利", Category: CategoryRates, BaseAmount: 3.9, Volatility: 0.2},
		{RIC: "AU_RATES", Name: "豪州金利", Category: CategoryRates, BaseAmount: 3.5, Volatility: 0.18},
		{RIC: "IG_CREDIT_US", Name: "米国IGクレジット", Category: CategoryCredit, BaseAmount: 6.0, Volatility: 0.21},
		{RIC: "IG_CREDIT_EU", Name: "欧州IGクレジット", Category: CategoryCredit, BaseAmount: 5.5, Volatility: 0.19},
		{RIC: "HY_CREDIT_US", Name: "米国HYクレジット", Category: CategoryCredit, BaseAmount: 7.4, Volatility: 0.3},
		{RIC: "HY_CREDIT_EU", Name: "欧州HYクレジット", Category: CategoryCredit, BaseAmount: 5.9, Volatility: 0.27},
		{RIC: "ASIA_CREDIT", Name: "アジアクレジット", Category: CategoryCredit, BaseAmount: 4.8, Volatility: 0.22},
		{RIC: "MBS_AGENCY", Name: "エージェンシーMBS", Category: CategoryMortgage, BaseAmount: 6.3, Volatility: 0.2},
		{RIC: "MBS_NONAGENCY", Name: "ノンエージェンシーMBS", Category: CategoryMortgage, BaseAmount: 4.1, Volatility: 0.25},
		{RIC: "CMBS_CORE", Name: "CMBSコア", Category: CategoryMortgage, BaseAmount: 3.6, Volatility: 0.23},
		{RIC: "RMBS_HE", Name: "住宅RMBS（HE）", Category: CategoryMortgage, BaseAmount: 3.2, Volatility: 0.19},
		{RIC: "GOLD", Name: "金（ロング）", Category: CategoryCommodity, BaseAmount: 2.8, Volatility: 0.2},
	}
}
