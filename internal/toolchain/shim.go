package toolchain

// Shim is a versioned set of ambient type declarations compiled alongside
// every snippet so that project-external imports do not cause
// false-positive failures. It is fixed data, never mutated at runtime.
type Shim struct {
	Version  string
	FileName string
	Source   string
}

// DefaultShim covers the SDK surface commonly shown in documentation
// snippets plus a wildcard module so unknown imports type-check as any.
var DefaultShim = Shim{
	Version:  "1",
	FileName: "ambient.d.ts",
	Source: `// ambient declarations, version 1
declare module "@solana/web3.js" {
  export class Connection {
    constructor(endpoint: string, commitment?: string);
    getBalance(publicKey: PublicKey): Promise<number>;
    getLatestBlockhash(): Promise<{ blockhash: string; lastValidBlockHeight: number }>;
    sendTransaction(transaction: Transaction, signers: Keypair[]): Promise<string>;
    confirmTransaction(signature: string, commitment?: string): Promise<unknown>;
  }
  export class PublicKey {
    constructor(value: string);
    toBase58(): string;
  }
  export class Keypair {
    static generate(): Keypair;
    static fromSecretKey(secretKey: Uint8Array): Keypair;
    publicKey: PublicKey;
    secretKey: Uint8Array;
  }
  export class Transaction {
    add(...instructions: unknown[]): Transaction;
  }
  export const SystemProgram: {
    transfer(params: { fromPubkey: PublicKey; toPubkey: PublicKey; lamports: number }): unknown;
  };
  export const LAMPORTS_PER_SOL: number;
  export function clusterApiUrl(cluster?: string): string;
  export function sendAndConfirmTransaction(
    connection: Connection,
    transaction: Transaction,
    signers: Keypair[],
  ): Promise<string>;
}

declare module "*";

declare function fetch(input: string, init?: unknown): Promise<{
  ok: boolean;
  status: number;
  json(): Promise<unknown>;
  text(): Promise<string>;
}>;

declare const console: {
  log(...args: unknown[]): void;
  error(...args: unknown[]): void;
  warn(...args: unknown[]): void;
};

declare const process: {
  env: Record<string, string | undefined>;
};
`,
}
