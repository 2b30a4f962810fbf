package chain

// CrowdfundingABI 众筹工厂合约 ABI
const CrowdfundingABI = `[
	{
		"type": "function",
		"name": "createProject",
		"inputs": [
			{"name": "minimumContribution", "type": "uint256"},
			{"name": "deadline", "type": "uint256"},
			{"name": "targetContribution", "type": "uint256"},
			{"name": "projectTitle", "type": "string"},
			{"name": "projectDesc", "type": "string"}
		],
		"outputs": [],
		"stateMutability": "nonpayable"
	},
	{
		"type": "function",
		"name": "returnAllProjects",
		"inputs": [],
		"outputs": [{"name": "projects", "type": "address[]"}],
		"stateMutability": "view"
	},
	{
		"type": "function",
		"name": "contribute",
		"inputs": [{"name": "_projectAddress", "type": "address"}],
		"outputs": [],
		"stateMutability": "payable"
	},
	{
		"type": "event",
		"name": "ProjectStarted",
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "projectContractAddress", "type": "address"},
			{"indexed": false, "name": "creator", "type": "address"},
			{"indexed": false, "name": "minContribution", "type": "uint256"},
			{"indexed": false, "name": "projectDeadline", "type": "uint256"},
			{"indexed": false, "name": "goalAmount", "type": "uint256"},
			{"indexed": false, "name": "currentAmount", "type": "uint256"},
			{"indexed": false, "name": "noOfContributors", "type": "uint256"},
			{"indexed": false, "name": "title", "type": "string"},
			{"indexed": false, "name": "desc", "type": "string"},
			{"indexed": false, "name": "currentState", "type": "uint256"}
		]
	},
	{
		"type": "event",
		"name": "ContributionReceived",
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "projectAddress", "type": "address"},
			{"indexed": false, "name": "contributedAmount", "type": "uint256"},
			{"indexed": true, "name": "contributor", "type": "address"}
		]
	}
]`

// ProjectABI 单个众筹项目合约 ABI
const ProjectABI = `[
	{
		"type": "function",
		"name": "getProjectDetails",
		"inputs": [],
		"outputs": [
			{"name": "projectStarter", "type": "address"},
			{"name": "minContribution", "type": "uint256"},
			{"name": "projectDeadline", "type": "uint256"},
			{"name": "goalAmount", "type": "uint256"},
			{"name": "completedTime", "type": "uint256"},
			{"name": "currentAmount", "type": "uint256"},
			{"name": "title", "type": "string"},
			{"name": "desc", "type": "string"},
			{"name": "currentState", "type": "uint8"},
			{"name": "balance", "type": "uint256"}
		],
		"stateMutability": "view"
	},
	{
		"type": "function",
		"name": "numOfWithdrawRequests",
		"inputs": [],
		"outputs": [{"name": "count", "type": "uint256"}],
		"stateMutability": "view"
	},
	{
		"type": "function",
		"name": "withdrawRequests",
		"inputs": [{"name": "", "type": "uint256"}],
		"outputs": [
			{"name": "description", "type": "string"},
			{"name": "amount", "type": "uint256"},
			{"name": "noOfVotes", "type": "uint256"},
			{"name": "isCompleted", "type": "bool"},
			{"name": "reciptent", "type": "address"}
		],
		"stateMutability": "view"
	},
	{
		"type": "function",
		"name": "createWithdrawRequest",
		"inputs": [
			{"name": "_description", "type": "string"},
			{"name": "_amount", "type": "uint256"},
			{"name": "_reciptent", "type": "address"}
		],
		"outputs": [],
		"stateMutability": "nonpayable"
	},
	{
		"type": "function",
		"name": "voteWithdrawRequest",
		"inputs": [{"name": "_requestId", "type": "uint256"}],
		"outputs": [],
		"stateMutability": "nonpayable"
	},
	{
		"type": "function",
		"name": "withdrawRequestedAmount",
		"inputs": [{"name": "_requestId", "type": "uint256"}],
		"outputs": [],
		"stateMutability": "nonpayable"
	},
	{
		"type": "event",
		"name": "FundingReceived",
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "contributor", "type": "address"},
			{"indexed": false, "name": "amount", "type": "uint256"},
			{"indexed": false, "name": "currentTotal", "type": "uint256"}
		]
	},
	{
		"type": "event",
		"name": "WithdrawRequestCreated",
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "requestId", "type": "uint256"},
			{"indexed": false, "name": "description", "type": "string"},
			{"indexed": false, "name": "amount", "type": "uint256"},
			{"indexed": false, "name": "noOfVotes", "type": "uint256"},
			{"indexed": false, "name": "isCompleted", "type": "bool"},
			{"indexed": false, "name": "reciptent", "type": "address"}
		]
	},
	{
		"type": "event",
		"name": "WithdrawVote",
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "voter", "type": "address"},
			{"indexed": false, "name": "totalVote", "type": "uint256"}
		]
	},
	{
		"type": "event",
		"name": "AmountWithdrawSuccessful",
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "requestId", "type": "uint256"},
			{"indexed": false, "name": "amount", "type": "uint256"},
			{"indexed": false, "name": "noOfVotes", "type": "uint256"},
			{"indexed": false, "name": "isCompleted", "type": "bool"},
			{"indexed": false, "name": "reciptent", "type": "address"}
		]
	}
]`

// 合约方法与事件名
const (
	MethodCreateProject           = "createProject"
	MethodReturnAllProjects       = "returnAllProjects"
	MethodContribute              = "contribute"
	MethodGetProjectDetails       = "getProjectDetails"
	MethodNumOfWithdrawRequests   = "numOfWithdrawRequests"
	MethodWithdrawRequests        = "withdrawRequests"
	MethodCreateWithdrawRequest   = "createWithdrawRequest"
	MethodVoteWithdrawRequest     = "voteWithdrawRequest"
	MethodWithdrawRequestedAmount = "withdrawRequestedAmount"

	EventProjectStarted           = "ProjectStarted"
	EventContributionReceived     = "ContributionReceived"
	EventFundingReceived          = "FundingReceived"
	EventWithdrawRequestCreated   = "WithdrawRequestCreated"
	EventWithdrawVote             = "WithdrawVote"
	EventAmountWithdrawSuccessful = "AmountWithdrawSuccessful"
)
