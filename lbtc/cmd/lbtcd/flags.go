package main

const (
	homeFlag           = "home"
	forceFlag          = "force"
	programIDFlag      = "program-id"
	networkFlag        = "network"
	adminFlag          = "admin"
	operatorFlag       = "operator"
	treasuryFlag       = "treasury"
	burnCommissionFlag = "burn-commission"
	dustFeeRateFlag    = "dust-fee-rate"
	mintFeeFlag        = "mint-fee"
	bitcoinNetworkFlag = "bitcoin-network"

	defaultDustFeeRate = 3000
)
