package config

const (
	// AuctionHouseProgramID is deployed at the same address on every public cluster.
	AuctionHouseProgramID = "hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk"

	// Environment overrides.
	EnvVarRPCURL    = "AUCTION_HOUSE_RPC_URL"
	EnvVarProgramID = "AUCTION_HOUSE_PROGRAM_ID"
	EnvVarKeypair   = "AUCTION_HOUSE_KEYPAIR"

	DefaultKeypairPath = "~/.config/solana/id.json"
)
