// Package contract binds the crowdfunding contract's fixed external
// surface: read-only queries via eth_call and the three write
// operations (donate, createCampaign, withdrawFunds).
package contract

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// campaignComponents is the Campaign tuple layout shared by every read
// method that returns campaign records.
const campaignComponents = `[
	{"name":"id","type":"uint256"},
	{"name":"title","type":"string"},
	{"name":"description","type":"string"},
	{"name":"ownerName","type":"string"},
	{"name":"ownerContact","type":"string"},
	{"name":"ownerWallet","type":"address"},
	{"name":"category","type":"string"},
	{"name":"imageURLs","type":"string[]"},
	{"name":"goal","type":"uint256"},
	{"name":"totalRaised","type":"uint256"},
	{"name":"platformFee","type":"uint256"},
	{"name":"finished","type":"bool"},
	{"name":"endTimestamp","type":"uint256"}
]`

var crowdfundABIJSON = `[
	{"type":"function","name":"getActiveCampaignsPaginated","stateMutability":"view",
		"inputs":[{"name":"offset","type":"uint256"},{"name":"limit","type":"uint256"}],
		"outputs":[{"name":"campaigns","type":"tuple[]","components":` + campaignComponents + `},{"name":"total","type":"uint256"}]},
	{"type":"function","name":"getFinishedCampaignsPaginated","stateMutability":"view",
		"inputs":[{"name":"offset","type":"uint256"},{"name":"limit","type":"uint256"}],
		"outputs":[{"name":"campaigns","type":"tuple[]","components":` + campaignComponents + `},{"name":"total","type":"uint256"}]},
	{"type":"function","name":"getCampaign","stateMutability":"view",
		"inputs":[{"name":"id","type":"uint256"}],
		"outputs":[{"name":"campaign","type":"tuple","components":` + campaignComponents + `}]},
	{"type":"function","name":"getDonations","stateMutability":"view",
		"inputs":[{"name":"id","type":"uint256"}],
		"outputs":[{"name":"donations","type":"tuple[]","components":[
			{"name":"donor","type":"address"},
			{"name":"amount","type":"uint256"},
			{"name":"timestamp","type":"uint256"}]}]},
	{"type":"function","name":"getPlatformFeePercent","stateMutability":"view",
		"inputs":[],
		"outputs":[{"name":"feeBps","type":"uint256"}]},
	{"type":"function","name":"pendingWithdrawals","stateMutability":"view",
		"inputs":[{"name":"id","type":"uint256"}],
		"outputs":[{"name":"amount","type":"uint256"}]},
	{"type":"function","name":"createCampaign","stateMutability":"nonpayable",
		"inputs":[
			{"name":"title","type":"string"},
			{"name":"description","type":"string"},
			{"name":"imageURLs","type":"string[]"},
			{"name":"goalAmount","type":"uint256"},
			{"name":"ownerName","type":"string"},
			{"name":"ownerContact","type":"string"},
			{"name":"category","type":"string"}],
		"outputs":[]},
	{"type":"function","name":"donate","stateMutability":"payable",
		"inputs":[{"name":"id","type":"uint256"}],
		"outputs":[]},
	{"type":"function","name":"withdrawFunds","stateMutability":"nonpayable",
		"inputs":[{"name":"id","type":"uint256"}],
		"outputs":[]},
	{"type":"event","name":"CampaignCreated","anonymous":false,
		"inputs":[
			{"name":"campaignId","type":"uint256","indexed":true},
			{"name":"owner","type":"address","indexed":true},
			{"name":"platformFee","type":"uint256","indexed":false}]}
]`

var crowdfundABI = mustParseABI(crowdfundABIJSON)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("contract: invalid crowdfund ABI: " + err.Error())
	}
	return parsed
}

// RawCampaign mirrors the ledger's Campaign tuple. Field names must
// match the ABI component names for decoding.
type RawCampaign struct {
	Id           *big.Int
	Title        string
	Description  string
	OwnerName    string
	OwnerContact string
	OwnerWallet  common.Address
	Category     string
	ImageURLs    []string
	Goal         *big.Int
	TotalRaised  *big.Int
	PlatformFee  *big.Int
	Finished     bool
	EndTimestamp *big.Int
}

// RawDonation mirrors the ledger's Donation tuple.
type RawDonation struct {
	Donor     common.Address
	Amount    *big.Int
	Timestamp *big.Int
}
